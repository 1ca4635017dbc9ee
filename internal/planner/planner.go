// Package planner turns business profiles into marketing plans using a
// generative model.
package planner

import (
	"context"
	"errors"

	"github.com/BerylCAtieno/stratyx-planner/internal/models"
)

var (
	// ErrMissingAPIKey is returned when the client is built without credentials.
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is required to create the plan generator")
	// ErrInvalidResponse wraps every response that fails to decode or validate.
	ErrInvalidResponse = errors.New("invalid generator response")
)

// Generator is the contract of the plan generator. Calls are slow (several
// seconds) and fallible.
type Generator interface {
	GeneratePlan(ctx context.Context, profile models.BusinessProfile) (*models.MarketingPlan, error)
	ExtendPlan(ctx context.Context, req ExtendRequest) ([]models.PostItem, error)
	ExtractPalette(ctx context.Context, imageDataURI string) ([]string, error)
}

// ExtendRequest asks for posts that continue an existing calendar.
type ExtendRequest struct {
	Profile models.BusinessProfile
	// LastDay is the highest dayOfMonth already scheduled.
	LastDay int
	// RecentTopics biases the model away from repeating itself.
	RecentTopics []string
}
