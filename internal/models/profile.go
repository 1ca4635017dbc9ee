package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidProfile = errors.New("invalid business profile")

type Objective string

const (
	ObjectiveSell      Objective = "sell"
	ObjectiveAttract   Objective = "attract"
	ObjectiveAuthority Objective = "authority"
)

type Style string

const (
	StyleFormal  Style = "formal"
	StyleCasual  Style = "casual"
	StylePopular Style = "popular"
)

type BusinessStage string

const (
	StageStarting      BusinessStage = "starting"
	StageRepositioning BusinessStage = "repositioning"
	StageScaling       BusinessStage = "scaling"
)

type Platform string

const (
	PlatformInstagram     Platform = "Instagram"
	PlatformTikTok        Platform = "TikTok"
	PlatformLinkedIn      Platform = "LinkedIn"
	PlatformWhatsApp      Platform = "WhatsApp"
	PlatformYouTubeShorts Platform = "YouTube Shorts"
)

// Platforms lists every platform a plan can target, in display order.
var Platforms = []Platform{
	PlatformInstagram,
	PlatformTikTok,
	PlatformLinkedIn,
	PlatformWhatsApp,
	PlatformYouTubeShorts,
}

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

type BusinessProfile struct {
	Name               string        `json:"name" validate:"required"`
	BusinessType       string        `json:"businessType" validate:"required"`
	ProductDescription string        `json:"productDescription"`
	TargetAudience     string        `json:"targetAudience" validate:"required"`
	Region             string        `json:"region" validate:"required"`
	Objective          Objective     `json:"objective" validate:"oneof=sell attract authority"`
	Style              Style         `json:"style" validate:"oneof=formal casual popular"`
	BusinessStage      BusinessStage `json:"businessStage,omitempty" validate:"omitempty,oneof=starting repositioning scaling"`
	SelectedPlatforms  []Platform    `json:"selectedPlatforms" validate:"min=1,unique,dive,platform"`
	PostsPerDay        int           `json:"postsPerDay" validate:"min=1"`
	SelectedDaysOfWeek []Weekday     `json:"selectedDaysOfWeek" validate:"min=1,unique,dive,weekday"`
	LogoURL            string        `json:"logoUrl,omitempty" validate:"omitempty,datauri"`
	ManualColors       []string      `json:"manualColors,omitempty" validate:"omitempty,dive,hexcolor"`
}

// NewBusinessProfile returns a profile with the intake wizard's defaults.
func NewBusinessProfile() BusinessProfile {
	return BusinessProfile{
		Objective:          ObjectiveSell,
		Style:              StylePopular,
		SelectedPlatforms:  []Platform{PlatformInstagram},
		PostsPerDay:        1,
		SelectedDaysOfWeek: []Weekday{Monday, Wednesday, Friday},
	}
}

// TogglePlatform adds p when absent and removes it when present. Removing the
// last selected platform is a no-op.
func (b *BusinessProfile) TogglePlatform(p Platform) {
	b.SelectedPlatforms = toggleMember(b.SelectedPlatforms, p)
}

// ToggleDay is TogglePlatform for the selected weekdays.
func (b *BusinessProfile) ToggleDay(d Weekday) {
	b.SelectedDaysOfWeek = toggleMember(b.SelectedDaysOfWeek, d)
}

func toggleMember[T comparable](set []T, v T) []T {
	idx := slices.Index(set, v)
	if idx < 0 {
		return append(slices.Clone(set), v)
	}
	if len(set) == 1 {
		return set
	}
	return slices.Delete(slices.Clone(set), idx, idx+1)
}

// HasPlatform reports whether p is one of the selected platforms.
func (b BusinessProfile) HasPlatform(p Platform) bool {
	return slices.Contains(b.SelectedPlatforms, p)
}

func (b BusinessProfile) Clone() BusinessProfile {
	c := b
	c.SelectedPlatforms = slices.Clone(b.SelectedPlatforms)
	c.SelectedDaysOfWeek = slices.Clone(b.SelectedDaysOfWeek)
	c.ManualColors = slices.Clone(b.ManualColors)
	return c
}

// Validate checks the intake constraints. The returned error wraps
// ErrInvalidProfile and names every failing field.
func (b BusinessProfile) Validate() error {
	err := validate.Struct(b)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(fields, ", "))
}
