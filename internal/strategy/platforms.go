package strategy

import "github.com/postpilot/calendar-bot/internal/models"

// Platform-specific content briefs injected into the generation prompt.
var platformGuidelines = map[models.Platform]string{
	models.PlatformWhatsApp:  "WhatsApp: Focus on personal, conversational content. Use text-based updates, status updates, and direct messaging strategies. Keep content concise and engaging for personal connections.",
	models.PlatformInstagram: "Instagram: Visual-first platform. Focus on high-quality images, Stories, Reels, and carousel posts. Use hashtags strategically. Content should be visually appealing and shareable.",
	models.PlatformFacebook:  "Facebook: Community-focused content. Mix of text posts, images, videos, and live content. Focus on building community engagement, discussions, and sharing valuable information.",
	models.PlatformLinkedIn:  "LinkedIn: Professional and thought leadership content. Focus on industry insights, professional tips, company updates, and networking. Maintain professional tone while being engaging.",
	models.PlatformX:         "X (Twitter): Concise, timely, and engaging content. Focus on trending topics, quick insights, threads for longer content, and real-time engagement. Use hashtags and mentions strategically.",
}

// GuidelineFor returns the content brief for a platform, or an empty string
// for an unknown platform.
func GuidelineFor(platform models.Platform) string {
	return platformGuidelines[platform]
}

// KnownPlatform reports whether the platform is one the service supports.
func KnownPlatform(platform models.Platform) bool {
	_, ok := platformGuidelines[platform]
	return ok
}

// NormalizePlatforms deduplicates the requested platforms, preserving order
// and dropping unknown entries. An empty result defaults to Instagram, the
// same default the product applies when no platform is selected.
func NormalizePlatforms(platforms []models.Platform) []models.Platform {
	seen := make(map[models.Platform]bool)
	var normalized []models.Platform

	for _, p := range platforms {
		if !KnownPlatform(p) || seen[p] {
			continue
		}
		seen[p] = true
		normalized = append(normalized, p)
	}

	if len(normalized) == 0 {
		return []models.Platform{models.PlatformInstagram}
	}
	return normalized
}
