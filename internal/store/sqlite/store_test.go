package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/stratyx-planner/internal/store"
	"github.com/BerylCAtieno/stratyx-planner/internal/store/storetest"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "stratyx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return openTempStore(t)
	})
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stratyx.db")
	first, err := Open(path)
	require.NoError(t, err)
	_, err = first.Save(context.Background(), "a@x.com", storetest.Project("1", "Loja X", time.Now().UTC()))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	var applied int
	require.NoError(t, second.sqlDB.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)

	projects, err := second.List(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestUpdateResortsByCreation(t *testing.T) {
	ctx := context.Background()
	s := openTempStore(t)
	base := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.Save(ctx, "a@x.com", storetest.Project("old", "old", base))
	require.NoError(t, err)
	_, err = s.Save(ctx, "a@x.com", storetest.Project("new", "new", base.Add(time.Hour)))
	require.NoError(t, err)

	// re-saving the older project does not move it to the head
	_, err = s.Save(ctx, "a@x.com", storetest.Project("old", "old edited", base))
	require.NoError(t, err)

	projects, err := s.List(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "new", projects[0].ID)
	assert.Equal(t, "old edited", projects[1].ProjectName)
}
