// Package store persists projects per namespace (a user identity string).
// Backends live in subpackages; callers depend on the Store interface only.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/stratyx-planner/internal/models"
)

var (
	ErrNotFound         = errors.New("project not found")
	ErrConflict         = errors.New("project was modified by another save")
	ErrMissingID        = errors.New("project id is required")
	ErrInvalidNamespace = errors.New("namespace is required")
)

// Store maps a namespace to its projects, most recent first. Saves are upserts
// keyed by project id; deleting an absent id is not an error.
type Store interface {
	List(ctx context.Context, namespace string) ([]models.Project, error)
	Save(ctx context.Context, namespace string, p models.Project) (models.Project, error)
	Delete(ctx context.Context, namespace, id string) error
}

// NextVersion applies the optimistic concurrency rule shared by all backends.
// A zero incoming version always wins; otherwise it must match the stored one.
func NextVersion(stored *models.Project, incoming models.Project) (int64, error) {
	if stored == nil {
		return 1, nil
	}
	if incoming.Version != 0 && incoming.Version != stored.Version {
		return 0, fmt.Errorf("%w: %s at version %d, save based on %d",
			ErrConflict, incoming.ID, stored.Version, incoming.Version)
	}
	return stored.Version + 1, nil
}

// Namespace binds a backend to one identity.
type Namespace struct {
	backend Store
	email   string
}

// Open returns a handle for email. The identity only partitions storage and
// is not verified; distinct strings are distinct namespaces.
func Open(backend Store, email string) (*Namespace, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInvalidNamespace
	}
	return &Namespace{backend: backend, email: email}, nil
}

func (n *Namespace) Email() string { return n.email }

func (n *Namespace) List(ctx context.Context) ([]models.Project, error) {
	return n.backend.List(ctx, n.email)
}

func (n *Namespace) Save(ctx context.Context, p models.Project) (models.Project, error) {
	if p.ID == "" {
		return models.Project{}, ErrMissingID
	}
	return n.backend.Save(ctx, n.email, p)
}

func (n *Namespace) Delete(ctx context.Context, id string) error {
	return n.backend.Delete(ctx, n.email, id)
}

// Find returns the project with id or ErrNotFound.
func (n *Namespace) Find(ctx context.Context, id string) (models.Project, error) {
	projects, err := n.List(ctx)
	if err != nil {
		return models.Project{}, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}
