// Package sqlite is the remote-table backend: a projects table partitioned by
// a user_email column and ordered by creation time.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/BerylCAtieno/stratyx-planner/internal/models"
	"github.com/BerylCAtieno/stratyx-planner/internal/store"
	"github.com/BerylCAtieno/stratyx-planner/internal/store/sqlite/migrations"
)

// Store provides SQLite-backed persistence for projects.
type Store struct {
	sqlDB *sql.DB
}

var _ store.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Open opens a SQLite store at the provided path and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) List(ctx context.Context, namespace string) ([]models.Project, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT payload FROM projects
		WHERE user_email = ?
		ORDER BY created_at DESC, rowid DESC`, namespace)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		var p models.Project
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *Store) Save(ctx context.Context, namespace string, p models.Project) (models.Project, error) {
	if p.ID == "" {
		return models.Project{}, store.ErrMissingID
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return models.Project{}, fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var stored *models.Project
	var current int64
	err = tx.QueryRowContext(ctx,
		`SELECT version FROM projects WHERE user_email = ? AND id = ?`, namespace, p.ID,
	).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return models.Project{}, fmt.Errorf("load project version: %w", err)
	default:
		stored = &models.Project{ID: p.ID, Version: current}
	}

	version, err := store.NextVersion(stored, p)
	if err != nil {
		return models.Project{}, err
	}
	p.Version = version

	payload, err := json.Marshal(p)
	if err != nil {
		return models.Project{}, fmt.Errorf("encode project: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO projects (user_email, id, project_name, created_at, version, payload)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_email, id) DO UPDATE SET
			project_name = excluded.project_name,
			created_at = excluded.created_at,
			version = excluded.version,
			payload = excluded.payload`,
		namespace, p.ID, p.ProjectName, toMillis(p.CreatedAt), p.Version, string(payload),
	); err != nil {
		return models.Project{}, fmt.Errorf("save project: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Project{}, fmt.Errorf("commit save: %w", err)
	}
	return p, nil
}

func (s *Store) Delete(ctx context.Context, namespace, id string) error {
	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM projects WHERE user_email = ? AND id = ?`, namespace, id,
	); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
