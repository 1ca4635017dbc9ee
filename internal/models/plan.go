package models

type PostStatus string

const (
	StatusPending PostStatus = "pending"
	StatusPosted  PostStatus = "posted"
)

// Toggled returns the other status of the two-state post lifecycle.
func (s PostStatus) Toggled() PostStatus {
	if s == StatusPosted {
		return StatusPending
	}
	return StatusPosted
}

type FunnelStage string

const (
	FunnelToFu FunnelStage = "ToFu"
	FunnelMoFu FunnelStage = "MoFu"
	FunnelBoFu FunnelStage = "BoFu"
)

type BrandIdentity struct {
	Bio             string   `json:"bio" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Promise         string   `json:"promise" validate:"required"`
	Keywords        []string `json:"keywords" validate:"required"`
	SuggestedColors []string `json:"suggestedColors" validate:"required"`
	VisualStyle     string   `json:"visualStyle" validate:"required"`
}

type FunnelStep struct {
	Stage           string `json:"stage"`
	Goal            string `json:"goal"`
	ContentStrategy string `json:"contentStrategy"`
}

type SalesFunnel struct {
	ToFu FunnelStep `json:"tofu"`
	MoFu FunnelStep `json:"mofu"`
	BoFu FunnelStep `json:"bofu"`
}

type ContentStrategy struct {
	IdealTypes []string     `json:"idealTypes" validate:"required"`
	Frequency  string       `json:"frequency" validate:"required"`
	Formats    []string     `json:"formats" validate:"required"`
	HotTopics  []string     `json:"hotTopics" validate:"required"`
	Rationale  string       `json:"rationale" validate:"required"`
	Funnel     *SalesFunnel `json:"funnel,omitempty"`
}

type ReelsMetadata struct {
	Hook3s     string `json:"hook3s"`
	CTA        string `json:"cta"`
	AudioTrend string `json:"audioTrend,omitempty"`
}

type PostItem struct {
	ID            string         `json:"id" validate:"required"`
	Type          string         `json:"type" validate:"required"`
	Topic         string         `json:"topic" validate:"required"`
	Hook          string         `json:"hook" validate:"required"`
	Caption       string         `json:"caption" validate:"required"`
	Hashtags      []string       `json:"hashtags"`
	Script        string         `json:"script,omitempty"`
	BestTime      string         `json:"bestTime" validate:"required"`
	Platform      Platform       `json:"platform" validate:"required"`
	Status        PostStatus     `json:"status" validate:"oneof=pending posted"`
	IsTrend       bool           `json:"isTrend,omitempty"`
	DayOfMonth    int            `json:"dayOfMonth" validate:"min=1"`
	FunnelStage   FunnelStage    `json:"funnelStage,omitempty" validate:"omitempty,oneof=ToFu MoFu BoFu"`
	ReelsMetadata *ReelsMetadata `json:"reelsMetadata,omitempty"`
}

type Competitor struct {
	Name            string `json:"name" validate:"required"`
	PostTypes       string `json:"postTypes"`
	EngagementLevel string `json:"engagementLevel"`
	Opportunity     string `json:"opportunity"`
	RecentActivity  string `json:"recentActivity"`
}

type TikTokAdaptation struct {
	VideoIdea            string   `json:"videoIdea"`
	Caption              string   `json:"caption"`
	Hashtags             []string `json:"hashtags"`
	AudioTrendSuggestion string   `json:"audioTrendSuggestion"`
}

type LinkedInAdaptation struct {
	PostText string   `json:"postText"`
	Hashtags []string `json:"hashtags"`
}

type ShortsAdaptation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	VideoIdea   string   `json:"videoIdea"`
	Hashtags    []string `json:"hashtags"`
}

type WhatsAppAdaptation struct {
	Message    string `json:"message"`
	StatusIdea string `json:"statusIdea"`
}

// PlatformAdaptation rewrites one calendar post for the secondary platforms.
type PlatformAdaptation struct {
	PostID        string             `json:"postId" validate:"required"`
	OriginalTopic string             `json:"originalTopic"`
	TikTok        TikTokAdaptation   `json:"tiktok"`
	LinkedIn      LinkedInAdaptation `json:"linkedin"`
	YouTubeShorts ShortsAdaptation   `json:"youtubeShorts"`
	WhatsApp      WhatsAppAdaptation `json:"whatsapp"`
}

// GroundingSource is a citation attached by the model to its answer.
type GroundingSource struct {
	URI     string `json:"uri"`
	Title   string `json:"title,omitempty"`
	License string `json:"license,omitempty"`
}

type MarketingPlan struct {
	Identity         BrandIdentity        `json:"identity"`
	Strategy         ContentStrategy      `json:"strategy"`
	Summary          string               `json:"summary"`
	Calendar         []PostItem           `json:"calendar" validate:"required,dive"`
	Competitors      []Competitor         `json:"competitors" validate:"dive"`
	Adaptations      []PlatformAdaptation `json:"adaptations,omitempty" validate:"dive"`
	GroundingSources []GroundingSource    `json:"groundingSources,omitempty"`
}

// WithCalendar returns a shallow copy of the plan that references posts.
func (m MarketingPlan) WithCalendar(posts []PostItem) MarketingPlan {
	m.Calendar = posts
	return m
}
