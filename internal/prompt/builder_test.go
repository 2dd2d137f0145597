package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/postpilot/calendar-bot/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDateWindow(t *testing.T) {
	today := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	dates := DateWindow(today)

	assert.Len(t, dates, 30)
	assert.Equal(t, "2025-03-15", dates[0])
	assert.Equal(t, "2025-03-16", dates[1])
	assert.Equal(t, "2025-04-13", dates[29])
}

func TestDateWindow_crossesMonthEnd(t *testing.T) {
	today := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	dates := DateWindow(today)

	// 2024 is a leap year
	assert.Equal(t, "2024-02-29", dates[1])
	assert.Equal(t, "2024-03-01", dates[2])
}

func TestBuild_deterministic(t *testing.T) {
	req := models.GenerationRequest{
		InputText:      "A cozy neighborhood coffee shop",
		BusinessType:   "cafe",
		TargetAudience: "local professionals",
	}
	platforms := []models.Platform{models.PlatformInstagram, models.PlatformLinkedIn}
	dist := models.FunnelDistribution{Top: 100, Middle: 10, Bottom: 0}
	dates := DateWindow(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	first := Build(req, platforms, dist, dates)
	second := Build(req, platforms, dist, dates)

	assert.Equal(t, first, second, "prompt must be byte-identical for identical inputs")
}

func TestBuild_content(t *testing.T) {
	req := models.GenerationRequest{
		InputText:      "Handmade ceramics studio",
		TargetAudience: "design lovers",
	}
	platforms := []models.Platform{models.PlatformInstagram, models.PlatformFacebook, models.PlatformX}
	dist := models.FunnelDistribution{Top: 10, Middle: 20, Bottom: 70}
	dates := DateWindow(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	p := Build(req, platforms, dist, dates)

	assert.Contains(t, p, "Handmade ceramics studio")
	assert.Contains(t, p, "Target Audience: design lovers")
	assert.NotContains(t, p, "Business Type:", "omitted hint must not leave an empty label")
	assert.Contains(t, p, "Today's date is 2025-06-01")
	assert.Contains(t, p, "Top Funnel (Awareness): 10%")
	assert.Contains(t, p, "Middle Funnel (Nurturing): 20%")
	assert.Contains(t, p, "Bottom Funnel (Converting): 70%")
	assert.Contains(t, p, "- Instagram\n")
	assert.Contains(t, p, "\"platform\": \"instagram|facebook|x\"")
	// floor(30/3) posts per platform
	assert.Contains(t, p, "approximately 10 posts")
	// every window date is offered to the model
	for _, d := range dates {
		assert.Contains(t, p, d)
	}
}

func TestBuild_perPlatformTargetRoundsDown(t *testing.T) {
	req := models.GenerationRequest{InputText: "Yoga studio"}
	platforms := []models.Platform{
		models.PlatformInstagram,
		models.PlatformFacebook,
		models.PlatformLinkedIn,
		models.PlatformX,
	}
	dist := models.FunnelDistribution{Top: 100, Middle: 10, Bottom: 0}
	dates := DateWindow(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	p := Build(req, platforms, dist, dates)
	assert.Contains(t, p, "approximately 7 posts")
}

func TestSystemInstruction(t *testing.T) {
	assert.Contains(t, SystemInstruction(true), "valid JSON object only")
	assert.Contains(t, SystemInstruction(false), "no markdown, no code blocks")
	assert.NotEqual(t, SystemInstruction(true), SystemInstruction(false))
}

func TestBuild_guidelinesIncluded(t *testing.T) {
	req := models.GenerationRequest{InputText: "Food truck"}
	platforms := []models.Platform{models.PlatformLinkedIn}
	dist := models.FunnelDistribution{Top: 100, Middle: 10, Bottom: 0}
	dates := DateWindow(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	p := Build(req, platforms, dist, dates)
	assert.True(t, strings.Contains(p, "LinkedIn: Professional and thought leadership content"))
}
