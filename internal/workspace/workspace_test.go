package workspace

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/stratyx-planner/internal/models"
	"github.com/BerylCAtieno/stratyx-planner/internal/planner"
	"github.com/BerylCAtieno/stratyx-planner/internal/store"
	"github.com/BerylCAtieno/stratyx-planner/internal/store/local"
	"github.com/BerylCAtieno/stratyx-planner/internal/store/storetest"
)

type fakeGenerator struct {
	plan     *models.MarketingPlan
	posts    []models.PostItem
	palette  []string
	err      error
	extendIn []planner.ExtendRequest
}

func (f *fakeGenerator) GeneratePlan(_ context.Context, _ models.BusinessProfile) (*models.MarketingPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	plan := *f.plan
	return &plan, nil
}

func (f *fakeGenerator) ExtendPlan(_ context.Context, req planner.ExtendRequest) ([]models.PostItem, error) {
	f.extendIn = append(f.extendIn, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.posts, nil
}

func (f *fakeGenerator) ExtractPalette(_ context.Context, _ string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.palette, nil
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var created = time.Date(2024, 12, 1, 9, 30, 0, 0, time.UTC)

func setup(t *testing.T, gen *fakeGenerator) (*Workspace, *store.Namespace) {
	t.Helper()
	backend, err := local.New(t.TempDir())
	require.NoError(t, err)
	ns, err := store.Open(backend, "a@x.com")
	require.NoError(t, err)
	ws := New(ns, gen, zap.NewNop().Sugar())
	ws.now = func() time.Time { return created }
	return ws, ns
}

func TestToggleThenPersist(t *testing.T) {
	ctx := context.Background()
	ws, ns := setup(t, &fakeGenerator{})

	saved, err := ns.Save(ctx, storetest.Project("1", "Loja X", created))
	require.NoError(t, err)

	toggled, err := ws.ToggleStatus(ctx, saved, "p1")
	require.NoError(t, err)
	require.Len(t, toggled.Plan.Calendar, 1)
	assert.Equal(t, models.StatusPosted, toggled.Plan.Calendar[0].Status)

	projects, err := ns.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, models.StatusPosted, projects[0].Plan.Calendar[0].Status)
	assert.Equal(t, toggled, projects[0])

	// the returned value carries the new version, so a second toggle is accepted
	back, err := ws.ToggleStatus(ctx, toggled, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, back.Plan.Calendar[0].Status)
}

func TestToggleUnknownPostIsNoop(t *testing.T) {
	ctx := context.Background()
	ws, ns := setup(t, &fakeGenerator{})
	saved, err := ns.Save(ctx, storetest.Project("1", "Loja X", created))
	require.NoError(t, err)

	got, err := ws.ToggleStatus(ctx, saved, "missing")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(saved, got))

	projects, err := ns.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), projects[0].Version)
}

func TestToggleUnsavedProjectDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	ws, ns := setup(t, &fakeGenerator{})
	draft := storetest.Project("", "Rascunho", created)

	got, err := ws.ToggleStatus(ctx, draft, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPosted, got.Plan.Calendar[0].Status)

	projects, err := ns.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestExtendPassesTopicsAndAppendsVerbatim(t *testing.T) {
	ctx := context.Background()
	dup := models.PostItem{
		ID: "n1", Type: "Reels", Topic: "Promoção de verão", Hook: "De novo", Caption: "Repetido",
		BestTime: "19:00", Platform: models.PlatformInstagram, Status: models.StatusPending, DayOfMonth: 2,
	}
	gen := &fakeGenerator{posts: []models.PostItem{dup}}
	ws, ns := setup(t, gen)
	saved, err := ns.Save(ctx, storetest.Project("1", "Loja X", created))
	require.NoError(t, err)

	extended, err := ws.ExtendCalendar(ctx, saved)
	require.NoError(t, err)

	require.Len(t, gen.extendIn, 1)
	assert.Equal(t, []string{"Promoção de verão"}, gen.extendIn[0].RecentTopics)
	assert.Equal(t, 1, gen.extendIn[0].LastDay)

	require.Len(t, extended.Plan.Calendar, 2)
	assert.Empty(t, cmp.Diff(saved.Plan.Calendar[0], extended.Plan.Calendar[0]))
	assert.Empty(t, cmp.Diff(dup, extended.Plan.Calendar[1]))

	stored, err := ns.Find(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, stored.Plan.Calendar, 2)
}

func TestExtendFailureLeavesCalendar(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{err: errors.New("service unavailable")}
	ws, ns := setup(t, gen)
	saved, err := ns.Save(ctx, storetest.Project("1", "Loja X", created))
	require.NoError(t, err)

	got, err := ws.ExtendCalendar(ctx, saved)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Empty(t, cmp.Diff(saved, got))

	stored, err := ns.Find(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(saved, stored))
}

func TestSaveAssignsIDOnce(t *testing.T) {
	ctx := context.Background()
	ws, ns := setup(t, &fakeGenerator{})
	draft := storetest.Project("", "", created)

	first, err := ws.Save(ctx, draft, "Loja X")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	assert.Equal(t, "Loja X", first.ProjectName)
	assert.Equal(t, created, first.CreatedAt)

	second, err := ws.Save(ctx, first, "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(2), second.Version)

	projects, err := ns.List(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestSaveAsClonesAndRenames(t *testing.T) {
	ctx := context.Background()
	ws, ns := setup(t, &fakeGenerator{})
	original, err := ns.Save(ctx, storetest.Project("1", "Loja X", created))
	require.NoError(t, err)

	copied, err := ws.SaveAs(ctx, original, "Loja X Natal")
	require.NoError(t, err)
	assert.NotEqual(t, original.ID, copied.ID)
	assert.Equal(t, "Loja X Natal", copied.ProjectName)
	assert.Equal(t, "Loja X Natal", copied.Profile.Name)
	assert.Equal(t, "Loja X", original.Profile.Name)

	projects, err := ns.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, copied.ID, projects[0].ID)
}

func TestGenerateValidatesAndWrapsErrors(t *testing.T) {
	ctx := context.Background()
	plan := storetest.Project("x", "x", created).Plan
	gen := &fakeGenerator{plan: &plan}
	ws, _ := setup(t, gen)

	_, err := ws.Generate(ctx, models.BusinessProfile{})
	assert.ErrorIs(t, err, models.ErrInvalidProfile)

	got, err := ws.Generate(ctx, storetest.Profile("Loja X"))
	require.NoError(t, err)
	assert.Equal(t, plan.Summary, got.Summary)

	gen.err = planner.ErrInvalidResponse
	_, err = ws.Generate(ctx, storetest.Profile("Loja X"))
	assert.ErrorIs(t, err, planner.ErrInvalidResponse)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestRegenerateReplacesProfileAndPlan(t *testing.T) {
	ctx := context.Background()
	plan := storetest.Project("x", "x", created).Plan
	plan.Summary = "Nova estratégia"
	ws, ns := setup(t, &fakeGenerator{plan: &plan})
	saved, err := ns.Save(ctx, storetest.Project("1", "Loja X", created))
	require.NoError(t, err)

	profile := storetest.Profile("Loja X")
	profile.Objective = models.ObjectiveAuthority
	next, err := ws.Regenerate(ctx, saved, profile)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, next.ID)
	assert.Equal(t, models.ObjectiveAuthority, next.Profile.Objective)
	assert.Equal(t, "Nova estratégia", next.Plan.Summary)

	stored, err := ns.Find(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Nova estratégia", stored.Plan.Summary)
}

func TestExtractPaletteDegrades(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{palette: []string{"#000000"}}
	ws, _ := setup(t, gen)
	assert.Equal(t, []string{"#000000"}, ws.ExtractPalette(ctx, "data:image/png;base64,AA=="))

	gen.err = errors.New("boom")
	assert.Nil(t, ws.ExtractPalette(ctx, "data:image/png;base64,AA=="))
}

func TestDeleteIsAbsorbing(t *testing.T) {
	ctx := context.Background()
	ws, ns := setup(t, &fakeGenerator{})
	_, err := ns.Save(ctx, storetest.Project("1", "Loja X", created))
	require.NoError(t, err)

	require.NoError(t, ws.Delete(ctx, "missing"))
	require.NoError(t, ws.Delete(ctx, "1"))
	_, err = ws.Find(ctx, "1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
