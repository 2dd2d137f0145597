package models

import "time"

// FunnelStage is the marketing funnel position a post targets.
type FunnelStage string

const (
	FunnelTop    FunnelStage = "top"
	FunnelMiddle FunnelStage = "middle"
	FunnelBottom FunnelStage = "bottom"
)

// PostType classifies the style of a post.
type PostType string

const (
	PostTypeEntertaining PostType = "entertaining"
	PostTypeInspiring    PostType = "inspiring"
	PostTypeEducational  PostType = "educational"
	PostTypeConnect      PostType = "connect"
	PostTypePromotional  PostType = "promotional"
)

// Goal is what a post is meant to achieve, derived from its funnel stage.
type Goal string

const (
	GoalAwareness  Goal = "awareness"
	GoalNurturing  Goal = "nurturing"
	GoalConverting Goal = "converting"
)

// Platform identifies a supported social network.
type Platform string

const (
	PlatformWhatsApp  Platform = "whatsapp"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformX         Platform = "x"
)

// AccountMaturity selects the funnel distribution applied to a calendar.
type AccountMaturity string

const (
	MaturityNew         AccountMaturity = "new"
	MaturityEstablished AccountMaturity = "established"
)

// FunnelDistribution holds the target percentage of posts per funnel stage.
// The percentages are generation targets handed to the model, not an
// enforced partition, so they are not required to sum to 100.
type FunnelDistribution struct {
	Top    int `json:"top"`
	Middle int `json:"middle"`
	Bottom int `json:"bottom"`
}

// Post is a single planned content item on a calendar day.
type Post struct {
	ID          string      `json:"id"`
	CalendarID  string      `json:"calendarId,omitempty"`
	Date        string      `json:"date"` // YYYY-MM-DD
	Platform    Platform    `json:"platform"`
	Content     string      `json:"content"`
	PostType    PostType    `json:"postType"`
	Category    string      `json:"category"`
	Topic       string      `json:"topic"`
	Goal        Goal        `json:"goal"`
	FunnelStage FunnelStage `json:"funnelStage"`
	Virality    int         `json:"virality"` // 0-100
}

// Calendar is the 30-day content plan produced by the generation pipeline.
// ID and CreatedAt are zero until the store assigns them on save.
type Calendar struct {
	ID                 string             `json:"id,omitempty"`
	InputText          string             `json:"inputText"`
	BusinessType       string             `json:"businessType,omitempty"`
	TargetAudience     string             `json:"targetAudience,omitempty"`
	Platforms          []Platform         `json:"platforms"`
	ContentPillars     []string           `json:"contentPillars"`
	FunnelDistribution FunnelDistribution `json:"funnelDistribution"`
	Posts              []Post             `json:"posts"`
	CreatedAt          time.Time          `json:"createdAt,omitempty"`
}

// GenerationRequest is the caller's input to the generation pipeline.
type GenerationRequest struct {
	InputText       string          `json:"inputText"`
	BusinessType    string          `json:"businessType,omitempty"`
	TargetAudience  string          `json:"targetAudience,omitempty"`
	AccountMaturity AccountMaturity `json:"accountMaturity,omitempty"`
	Platforms       []Platform      `json:"platforms"`
}

// ValidPostType reports whether s is a known post type value.
func ValidPostType(s string) bool {
	switch PostType(s) {
	case PostTypeEntertaining, PostTypeInspiring, PostTypeEducational, PostTypeConnect, PostTypePromotional:
		return true
	}
	return false
}

// ValidGoal reports whether s is a known goal value.
func ValidGoal(s string) bool {
	switch Goal(s) {
	case GoalAwareness, GoalNurturing, GoalConverting:
		return true
	}
	return false
}

// ValidFunnelStage reports whether s is a known funnel stage value.
func ValidFunnelStage(s string) bool {
	switch FunnelStage(s) {
	case FunnelTop, FunnelMiddle, FunnelBottom:
		return true
	}
	return false
}
