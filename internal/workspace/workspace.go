// Package workspace implements the dashboard operations for one namespace:
// generating plans, saving projects and merging calendar changes back into
// the store.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BerylCAtieno/stratyx-planner/internal/calendar"
	"github.com/BerylCAtieno/stratyx-planner/internal/models"
	"github.com/BerylCAtieno/stratyx-planner/internal/planner"
	"github.com/BerylCAtieno/stratyx-planner/internal/store"
)

// recentTopicCount is how many trailing topics are sent with an extension.
const recentTopicCount = 5

// ErrGenerationFailed marks errors that came from the plan generator.
var ErrGenerationFailed = errors.New("plan generator failed")

// GenerationFailedMessage is shown for every generator failure, whatever the
// cause.
const GenerationFailedMessage = "Não foi possível gerar o plano agora. Verifique sua conexão e tente novamente em instantes."

type Workspace struct {
	ns  *store.Namespace
	gen planner.Generator
	log *zap.SugaredLogger
	now func() time.Time
}

func New(ns *store.Namespace, gen planner.Generator, log *zap.SugaredLogger) *Workspace {
	return &Workspace{
		ns:  ns,
		gen: gen,
		log: log.With("namespace", ns.Email()),
		now: time.Now,
	}
}

func (w *Workspace) List(ctx context.Context) ([]models.Project, error) {
	return w.ns.List(ctx)
}

func (w *Workspace) Find(ctx context.Context, id string) (models.Project, error) {
	return w.ns.Find(ctx, id)
}

// Delete removes a project. Confirmation belongs to the caller.
func (w *Workspace) Delete(ctx context.Context, id string) error {
	if err := w.ns.Delete(ctx, id); err != nil {
		return err
	}
	w.log.Infow("project deleted", "project", id)
	return nil
}

// Generate produces a plan for profile without persisting anything.
func (w *Workspace) Generate(ctx context.Context, profile models.BusinessProfile) (*models.MarketingPlan, error) {
	return Generate(ctx, w.gen, w.log, profile)
}

// Generate validates profile and asks gen for a plan. It needs no namespace.
func Generate(ctx context.Context, gen planner.Generator, log *zap.SugaredLogger, profile models.BusinessProfile) (*models.MarketingPlan, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	plan, err := gen.GeneratePlan(ctx, profile)
	if err != nil {
		log.Errorw("plan generation failed", "business", profile.Name, "error", err)
		return nil, fmt.Errorf("%w: generate plan: %w", ErrGenerationFailed, err)
	}
	warnForeignPlatforms(log, profile, plan.Calendar)
	return plan, nil
}

// Save persists p. An unsaved project gets its id and creation time here;
// a non-empty name renames it.
func (w *Workspace) Save(ctx context.Context, p models.Project, name string) (models.Project, error) {
	if name != "" {
		p.ProjectName = name
	}
	if !p.Saved() {
		fresh, err := models.NewProject(p.ProjectName, p.Profile, p.Plan, w.now())
		if err != nil {
			return models.Project{}, err
		}
		p = fresh
	}
	saved, err := w.ns.Save(ctx, p)
	if err != nil {
		w.log.Errorw("project save failed", "project", p.ID, "error", err)
		return models.Project{}, err
	}
	w.log.Infow("project saved", "project", saved.ID, "version", saved.Version)
	return saved, nil
}

// SaveAs stores a copy of p under a new id and name, leaving p untouched.
func (w *Workspace) SaveAs(ctx context.Context, p models.Project, name string) (models.Project, error) {
	if name == "" {
		name = p.ProjectName
	}
	profile := p.Profile.Clone()
	profile.Name = name
	plan := p.Plan.WithCalendar(append([]models.PostItem(nil), p.Plan.Calendar...))

	copied, err := models.NewProject(name, profile, plan, w.now())
	if err != nil {
		return models.Project{}, err
	}
	return w.Save(ctx, copied, "")
}

// persistIfSaved writes p when it already belongs to a saved project.
func (w *Workspace) persistIfSaved(ctx context.Context, p models.Project) (models.Project, error) {
	if !p.Saved() {
		return p, nil
	}
	saved, err := w.ns.Save(ctx, p)
	if err != nil {
		w.log.Errorw("project update failed", "project", p.ID, "error", err)
		return p, err
	}
	return saved, nil
}

// ToggleStatus flips one post between pending and posted and persists the
// change immediately for saved projects. Unknown post ids change nothing.
func (w *Workspace) ToggleStatus(ctx context.Context, p models.Project, postID string) (models.Project, error) {
	if !calendar.Contains(p.Plan.Calendar, postID) {
		w.log.Debugw("toggle ignored, post not in calendar", "project", p.ID, "post", postID)
		return p, nil
	}
	p.Plan = p.Plan.WithCalendar(calendar.ToggleStatus(p.Plan.Calendar, postID))
	return w.persistIfSaved(ctx, p)
}

// ExtendCalendar asks the generator for more posts and appends them as
// returned. On failure p is returned unchanged with the error.
func (w *Workspace) ExtendCalendar(ctx context.Context, p models.Project) (models.Project, error) {
	req := planner.ExtendRequest{
		Profile:      p.Profile,
		LastDay:      calendar.MaxDay(p.Plan.Calendar),
		RecentTopics: calendar.RecentTopics(p.Plan.Calendar, recentTopicCount),
	}
	added, err := w.gen.ExtendPlan(ctx, req)
	if err != nil {
		w.log.Errorw("calendar extension failed", "project", p.ID, "error", err)
		return p, fmt.Errorf("%w: extend calendar: %w", ErrGenerationFailed, err)
	}
	warnForeignPlatforms(w.log, p.Profile, added)

	extended := p
	extended.Plan = p.Plan.WithCalendar(calendar.Append(p.Plan.Calendar, added))
	w.log.Infow("calendar extended", "project", p.ID, "added", len(added), "total", len(extended.Plan.Calendar))

	saved, err := w.persistIfSaved(ctx, extended)
	if err != nil {
		return p, err
	}
	return saved, nil
}

// Regenerate replaces the profile wholesale and generates a new plan for it,
// keeping the project's identity.
func (w *Workspace) Regenerate(ctx context.Context, p models.Project, profile models.BusinessProfile) (models.Project, error) {
	plan, err := w.Generate(ctx, profile)
	if err != nil {
		return p, err
	}
	next := p
	next.Profile = profile
	next.Plan = *plan
	return w.persistIfSaved(ctx, next)
}

func (w *Workspace) ExtractPalette(ctx context.Context, imageDataURI string) []string {
	return ExtractPalette(ctx, w.gen, w.log, imageDataURI)
}

// ExtractPalette is best effort: any failure is logged and yields no colours.
func ExtractPalette(ctx context.Context, gen planner.Generator, log *zap.SugaredLogger, imageDataURI string) []string {
	colors, err := gen.ExtractPalette(ctx, imageDataURI)
	if err != nil {
		log.Warnw("palette extraction failed", "error", err)
		return nil
	}
	return colors
}

// Generated posts are taken as-is; a platform outside the selection is only
// reported.
func warnForeignPlatforms(log *zap.SugaredLogger, profile models.BusinessProfile, posts []models.PostItem) {
	for _, post := range posts {
		if !profile.HasPlatform(post.Platform) {
			log.Warnw("generated post targets unselected platform", "post", post.ID, "platform", post.Platform)
		}
	}
}
