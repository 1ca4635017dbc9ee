// Package storetest is the behaviour suite every store backend must pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/stratyx-planner/internal/models"
	"github.com/BerylCAtieno/stratyx-planner/internal/store"
)

// Factory returns an empty backend. It is called once per subtest.
type Factory func(t *testing.T) store.Store

var baseTime = time.Date(2024, 12, 1, 9, 30, 0, 0, time.UTC)

// Profile returns a complete profile for tests.
func Profile(name string) models.BusinessProfile {
	p := models.NewBusinessProfile()
	p.Name = name
	p.BusinessType = "Moda praia"
	p.TargetAudience = "Mulheres 25-40"
	p.Region = "Florianópolis"
	return p
}

// Project builds a project with a single pending post p1.
func Project(id, name string, createdAt time.Time) models.Project {
	return models.Project{
		ID:          id,
		ProjectName: name,
		CreatedAt:   createdAt,
		Profile:     Profile(name),
		Plan: models.MarketingPlan{
			Identity: models.BrandIdentity{
				Bio:             "Bio",
				Description:     "Descrição",
				Promise:         "Promessa",
				Keywords:        []string{"praia"},
				SuggestedColors: []string{"#0EA5E9"},
				VisualStyle:     "Claro",
			},
			Summary: "Resumo",
			Calendar: []models.PostItem{{
				ID:         "p1",
				Type:       "Reels",
				Topic:      "Promoção de verão",
				Hook:       "Corre!",
				Caption:    "Só hoje",
				Hashtags:   []string{"#verao"},
				BestTime:   "18:00",
				Platform:   models.PlatformInstagram,
				Status:     models.StatusPending,
				DayOfMonth: 1,
			}},
		},
	}
}

func ids(projects []models.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

// Run exercises the Store contract against backends produced by newStore.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("unknown namespace lists empty", func(t *testing.T) {
		s := newStore(t)
		projects, err := s.List(ctx, "nobody@x.com")
		require.NoError(t, err)
		assert.Empty(t, projects)
	})

	t.Run("create and reload", func(t *testing.T) {
		s := newStore(t)
		saved, err := s.Save(ctx, "a@x.com", Project("1", "Loja X", baseTime))
		require.NoError(t, err)
		assert.Equal(t, int64(1), saved.Version)

		projects, err := s.List(ctx, "a@x.com")
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, saved, projects[0])
	})

	t.Run("upsert replaces by id", func(t *testing.T) {
		s := newStore(t)
		p := Project("1", "Loja X", baseTime)
		_, err := s.Save(ctx, "a@x.com", p)
		require.NoError(t, err)

		p.ProjectName = "Loja X renomeada"
		p.Plan.Summary = "Novo resumo"
		_, err = s.Save(ctx, "a@x.com", p)
		require.NoError(t, err)

		projects, err := s.List(ctx, "a@x.com")
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "Loja X renomeada", projects[0].ProjectName)
		assert.Equal(t, "Novo resumo", projects[0].Plan.Summary)
		assert.Equal(t, int64(2), projects[0].Version)
	})

	t.Run("most recent first", func(t *testing.T) {
		s := newStore(t)
		for i, id := range []string{"a", "b", "c"} {
			_, err := s.Save(ctx, "a@x.com", Project(id, id, baseTime.Add(time.Duration(i)*time.Minute)))
			require.NoError(t, err)
		}
		projects, err := s.List(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a"}, ids(projects))
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Save(ctx, "a@x.com", Project("1", "Loja X", baseTime))
		require.NoError(t, err)

		projects, err := s.List(ctx, "b@x.com")
		require.NoError(t, err)
		assert.Empty(t, projects)

		// same id in another namespace is a different record
		_, err = s.Save(ctx, "b@x.com", Project("1", "Loja B", baseTime))
		require.NoError(t, err)
		a, err := s.List(ctx, "a@x.com")
		require.NoError(t, err)
		require.Len(t, a, 1)
		assert.Equal(t, "Loja X", a[0].ProjectName)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Save(ctx, "a@x.com", Project("1", "Loja X", baseTime))
		require.NoError(t, err)
		_, err = s.Save(ctx, "a@x.com", Project("2", "Loja Y", baseTime.Add(time.Minute)))
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, "a@x.com", "1"))
		projects, err := s.List(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"2"}, ids(projects))
	})

	t.Run("delete of absent id is absorbing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Save(ctx, "a@x.com", Project("1", "Loja X", baseTime))
		require.NoError(t, err)
		before, err := s.List(ctx, "a@x.com")
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, "a@x.com", "missing"))
		require.NoError(t, s.Delete(ctx, "empty@x.com", "missing"))

		after, err := s.List(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		s := newStore(t)
		first, err := s.Save(ctx, "a@x.com", Project("1", "Loja X", baseTime))
		require.NoError(t, err)

		second, err := s.Save(ctx, "a@x.com", first)
		require.NoError(t, err)
		assert.Equal(t, int64(2), second.Version)

		first.ProjectName = "stale"
		_, err = s.Save(ctx, "a@x.com", first)
		assert.ErrorIs(t, err, store.ErrConflict)

		projects, err := s.List(ctx, "a@x.com")
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "Loja X", projects[0].ProjectName)
	})
}
