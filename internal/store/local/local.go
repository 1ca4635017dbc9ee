// Package local is the device-storage backend: each namespace is one JSON
// document stored under the key "stratyx_projects_v1_<email>".
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/BerylCAtieno/stratyx-planner/internal/models"
	"github.com/BerylCAtieno/stratyx-planner/internal/store"
)

const KeyPrefix = "stratyx_projects_v1_"

type Store struct {
	root string
	mu   sync.Mutex
}

var _ store.Store = (*Store)(nil)

func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{root: root}, nil
}

// Key returns the storage key of a namespace.
func Key(namespace string) string {
	return KeyPrefix + namespace
}

func (s *Store) path(namespace string) string {
	return filepath.Join(s.root, url.PathEscape(Key(namespace))+".json")
}

func (s *Store) List(_ context.Context, namespace string) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(namespace)
}

func (s *Store) Save(_ context.Context, namespace string, p models.Project) (models.Project, error) {
	if p.ID == "" {
		return models.Project{}, store.ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.read(namespace)
	if err != nil {
		return models.Project{}, err
	}

	idx := slices.IndexFunc(projects, func(existing models.Project) bool { return existing.ID == p.ID })
	var stored *models.Project
	if idx >= 0 {
		stored = &projects[idx]
	}
	version, err := store.NextVersion(stored, p)
	if err != nil {
		return models.Project{}, err
	}
	p.Version = version

	if idx >= 0 {
		projects[idx] = p
	} else {
		projects = slices.Insert(projects, 0, p)
	}
	if err := s.write(namespace, projects); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func (s *Store) Delete(_ context.Context, namespace, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.read(namespace)
	if err != nil {
		return err
	}
	before := len(projects)
	kept := slices.DeleteFunc(projects, func(p models.Project) bool { return p.ID == id })
	if len(kept) == before {
		return nil
	}
	return s.write(namespace, kept)
}

func (s *Store) read(namespace string) ([]models.Project, error) {
	data, err := os.ReadFile(s.path(namespace))
	if errors.Is(err, os.ErrNotExist) {
		return []models.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", Key(namespace), err)
	}
	var projects []models.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("decode %s: %w", Key(namespace), err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// write replaces the namespace document atomically.
func (s *Store) write(namespace string, projects []models.Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("encode %s: %w", Key(namespace), err)
	}
	tmp, err := os.CreateTemp(s.root, ".projects-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", Key(namespace), err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", Key(namespace), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", Key(namespace), err)
	}
	if err := os.Rename(tmp.Name(), s.path(namespace)); err != nil {
		return fmt.Errorf("write %s: %w", Key(namespace), err)
	}
	return nil
}
