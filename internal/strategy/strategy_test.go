package strategy

import (
	"testing"

	"github.com/postpilot/calendar-bot/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDistributionFor(t *testing.T) {
	tests := []struct {
		name     string
		maturity models.AccountMaturity
		expected models.FunnelDistribution
	}{
		{
			name:     "New account",
			maturity: models.MaturityNew,
			expected: models.FunnelDistribution{Top: 100, Middle: 10, Bottom: 0},
		},
		{
			name:     "Established account",
			maturity: models.MaturityEstablished,
			expected: models.FunnelDistribution{Top: 10, Middle: 20, Bottom: 70},
		},
		{
			name:     "Empty maturity defaults to new",
			maturity: "",
			expected: models.FunnelDistribution{Top: 100, Middle: 10, Bottom: 0},
		},
		{
			name:     "Unknown maturity defaults to new",
			maturity: "enterprise",
			expected: models.FunnelDistribution{Top: 100, Middle: 10, Bottom: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DistributionFor(tt.maturity))
		})
	}
}

func TestAllowedPostTypes(t *testing.T) {
	assert.Equal(t, []models.PostType{models.PostTypeEntertaining, models.PostTypeInspiring}, AllowedPostTypes(models.FunnelTop))
	assert.Equal(t, []models.PostType{models.PostTypeEducational, models.PostTypeConnect}, AllowedPostTypes(models.FunnelMiddle))
	assert.Equal(t, []models.PostType{models.PostTypePromotional}, AllowedPostTypes(models.FunnelBottom))
}

func TestGoalFor(t *testing.T) {
	assert.Equal(t, models.GoalAwareness, GoalFor(models.FunnelTop))
	assert.Equal(t, models.GoalNurturing, GoalFor(models.FunnelMiddle))
	assert.Equal(t, models.GoalConverting, GoalFor(models.FunnelBottom))
}

func TestGuidelineFor(t *testing.T) {
	for _, p := range []models.Platform{
		models.PlatformWhatsApp,
		models.PlatformInstagram,
		models.PlatformFacebook,
		models.PlatformLinkedIn,
		models.PlatformX,
	} {
		assert.NotEmpty(t, GuidelineFor(p), "missing guideline for %s", p)
	}
	assert.Empty(t, GuidelineFor("myspace"))
}

func TestNormalizePlatforms(t *testing.T) {
	tests := []struct {
		name     string
		input    []models.Platform
		expected []models.Platform
	}{
		{
			name:     "Deduplicates preserving order",
			input:    []models.Platform{models.PlatformLinkedIn, models.PlatformInstagram, models.PlatformLinkedIn},
			expected: []models.Platform{models.PlatformLinkedIn, models.PlatformInstagram},
		},
		{
			name:     "Drops unknown platforms",
			input:    []models.Platform{models.PlatformX, "myspace"},
			expected: []models.Platform{models.PlatformX},
		},
		{
			name:     "Empty input defaults to instagram",
			input:    nil,
			expected: []models.Platform{models.PlatformInstagram},
		},
		{
			name:     "Only unknown platforms defaults to instagram",
			input:    []models.Platform{"friendster"},
			expected: []models.Platform{models.PlatformInstagram},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePlatforms(tt.input))
		})
	}
}
