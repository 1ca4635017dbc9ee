package calendar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/stratyx-planner/internal/models"
)

func post(id string, day int, topic string) models.PostItem {
	return models.PostItem{
		ID:         id,
		Type:       "Reels",
		Topic:      topic,
		Hook:       "Você sabia?",
		Caption:    "Legenda de " + topic,
		Hashtags:   []string{"#loja", "#verao"},
		BestTime:   "18:00",
		Platform:   models.PlatformInstagram,
		Status:     models.StatusPending,
		DayOfMonth: day,
	}
}

func sample() []models.PostItem {
	return []models.PostItem{
		post("p1", 3, "Promoção de verão"),
		post("p2", 1, "Bastidores"),
		post("p3", 3, "Depoimento"),
	}
}

func TestToggleStatusFlipsOnlyTarget(t *testing.T) {
	before := sample()
	after := ToggleStatus(before, "p2")

	assert.Equal(t, models.StatusPosted, after[1].Status)
	assert.Empty(t, cmp.Diff(before[0], after[0]))
	assert.Empty(t, cmp.Diff(before[2], after[2]))
	// input untouched
	assert.Equal(t, models.StatusPending, before[1].Status)
}

func TestToggleStatusTwiceRestores(t *testing.T) {
	before := sample()
	after := ToggleStatus(ToggleStatus(before, "p1"), "p1")
	assert.Empty(t, cmp.Diff(before, after))
}

func TestToggleStatusUnknownIDIsNoop(t *testing.T) {
	before := sample()
	after := ToggleStatus(before, "missing")
	assert.Empty(t, cmp.Diff(before, after))
	assert.False(t, Contains(before, "missing"))
	assert.True(t, Contains(before, "p3"))
}

func TestAppendKeepsExistingAndOrder(t *testing.T) {
	existing := sample()
	added := []models.PostItem{post("n1", 4, "Promoção de verão"), post("n2", 5, "Lançamento")}

	out := Append(existing, added)

	require.Len(t, out, len(existing)+len(added))
	assert.Empty(t, cmp.Diff(existing, out[:len(existing)]))
	assert.Empty(t, cmp.Diff(added, out[len(existing):]))
}

func TestAppendRekeysCollidingIDs(t *testing.T) {
	existing := sample()
	added := []models.PostItem{post("p1", 4, "Novo"), post("p1", 5, "Outro"), post("p2-2", 6, "Já usado")}
	existing = append(existing, post("p2-2", 3, "Reservado"))

	out := Append(existing, added)

	ids := map[string]bool{}
	for _, p := range out {
		assert.False(t, ids[p.ID], "duplicate id %s", p.ID)
		ids[p.ID] = true
	}
	assert.Equal(t, "p1-2", out[4].ID)
	assert.Equal(t, "p1-3", out[5].ID)
	assert.Equal(t, "p2-2-2", out[6].ID)
	assert.Equal(t, "p1", existing[0].ID)
}

func TestAppendOntoNothingDeduplicates(t *testing.T) {
	posts := []models.PostItem{post("p1", 1, "Um"), post("p1", 2, "Dois"), post("p2", 3, "Três")}

	out := Append(nil, posts)

	require.Len(t, out, 3)
	assert.Equal(t, []string{"p1", "p1-2", "p2"}, []string{out[0].ID, out[1].ID, out[2].ID})
	assert.Equal(t, "Dois", out[1].Topic)
	assert.Equal(t, "p1", posts[1].ID)
}

func TestMaxDayAndRecentTopics(t *testing.T) {
	assert.Equal(t, 0, MaxDay(nil))
	assert.Equal(t, 3, MaxDay(sample()))

	assert.Nil(t, RecentTopics(nil, 5))
	assert.Equal(t, []string{"Promoção de verão", "Bastidores", "Depoimento"}, RecentTopics(sample(), 5))
	assert.Equal(t, []string{"Depoimento"}, RecentTopics(sample(), 1))
}

func TestGroupByDay(t *testing.T) {
	days := GroupByDay(sample())
	require.Len(t, days, 2)
	assert.Equal(t, 1, days[0].DayOfMonth)
	assert.Equal(t, 3, days[1].DayOfMonth)
	require.Len(t, days[1].Posts, 2)
	assert.Equal(t, "p1", days[1].Posts[0].ID)
	assert.Equal(t, "p3", days[1].Posts[1].ID)
}

func TestProgress(t *testing.T) {
	posted, total := Progress(ToggleStatus(sample(), "p3"))
	assert.Equal(t, 1, posted)
	assert.Equal(t, 3, total)
}
