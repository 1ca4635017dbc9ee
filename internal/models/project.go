package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Project pairs a profile snapshot with the plan generated for it. ID is
// assigned by the caller before the first save; Version is maintained by the
// store and starts at 1.
type Project struct {
	ID          string          `json:"id"`
	ProjectName string          `json:"projectName"`
	CreatedAt   time.Time       `json:"createdAt"`
	Version     int64           `json:"version"`
	Profile     BusinessProfile `json:"profile"`
	Plan        MarketingPlan   `json:"plan"`
}

// NewProjectID returns a time-ordered identifier so ids sort by creation.
func NewProjectID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate project id: %w", err)
	}
	return id.String(), nil
}

// NewProject builds an unsaved-but-identified project named after the profile
// unless name is given.
func NewProject(name string, profile BusinessProfile, plan MarketingPlan, now time.Time) (Project, error) {
	id, err := NewProjectID()
	if err != nil {
		return Project{}, err
	}
	if name == "" {
		name = profile.Name
	}
	return Project{
		ID:          id,
		ProjectName: name,
		CreatedAt:   now.UTC(),
		Profile:     profile,
		Plan:        plan,
	}, nil
}

// Saved reports whether the project has been assigned an identity.
func (p Project) Saved() bool {
	return p.ID != ""
}
