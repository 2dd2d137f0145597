package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/postpilot/calendar-bot/internal/models"
	"github.com/postpilot/calendar-bot/internal/strategy"
)

// WindowDays is the number of calendar days a generated plan covers.
const WindowDays = 30

// DateFormat is the wire format for post dates.
const DateFormat = "2006-01-02"

// DateWindow returns the WindowDays consecutive dates starting at today,
// formatted YYYY-MM-DD. The caller supplies today from the authoritative
// clock so the window is deterministic under test.
func DateWindow(today time.Time) []string {
	dates := make([]string, 0, WindowDays)
	for i := 0; i < WindowDays; i++ {
		dates = append(dates, today.AddDate(0, 0, i).Format(DateFormat))
	}
	return dates
}

// SystemInstruction returns the system message for a backend. Backends
// without structured-output support get told explicitly to skip markdown
// fencing, because they cannot be forced into raw JSON any other way.
func SystemInstruction(jsonMode bool) string {
	if jsonMode {
		return "You are an expert social media content strategist. Always return valid JSON. Your response must be a valid JSON object only, no additional text."
	}
	return "You are an expert social media content strategist. Return ONLY valid JSON, no markdown, no code blocks, just the raw JSON object."
}

// Build assembles the generation prompt. The output is a pure function of
// its inputs: identical request, platforms, distribution, and date window
// produce byte-identical prompts.
func Build(req models.GenerationRequest, platforms []models.Platform, dist models.FunnelDistribution, dates []string) string {
	var b strings.Builder

	b.WriteString("You are a social media content strategist. Based on the following business information, create a comprehensive 30-day social media content calendar for the selected platforms.\n\n")

	b.WriteString("Selected Platforms:\n")
	for _, p := range platforms {
		b.WriteString("- " + titleCase(string(p)) + "\n")
	}

	b.WriteString("\nPlatform-Specific Guidelines:\n")
	for _, p := range platforms {
		b.WriteString(strategy.GuidelineFor(p) + "\n")
	}

	b.WriteString("\nBusiness Information:\n")
	b.WriteString(req.InputText + "\n")
	if req.BusinessType != "" {
		b.WriteString("Business Type: " + req.BusinessType + "\n")
	}
	if req.TargetAudience != "" {
		b.WriteString("Target Audience: " + req.TargetAudience + "\n")
	}

	fmt.Fprintf(&b, "\nIMPORTANT: Today's date is %s. You must create posts for the next 30 days starting from today.\n", dates[0])

	b.WriteString("\nRequirements:\n")
	b.WriteString("1. Identify 3-7 content pillars/categories that align with this business\n")
	b.WriteString("2. Create 30 days of content ideas (one post per day) - EXACTLY 30 posts, one for each date\n")
	b.WriteString("3. Distribute posts according to funnel stages:\n")
	fmt.Fprintf(&b, "   - Top Funnel (Awareness): %d%% - Entertaining/inspiring content\n", dist.Top)
	fmt.Fprintf(&b, "   - Middle Funnel (Nurturing): %d%% - Educational/connect content\n", dist.Middle)
	fmt.Fprintf(&b, "   - Bottom Funnel (Converting): %d%% - Promotional content\n", dist.Bottom)

	b.WriteString("\n4. For each post, provide:\n")
	fmt.Fprintf(&b, "   - Date (MUST use one of these exact dates: %s)\n", strings.Join(dates, ", "))
	fmt.Fprintf(&b, "   - Platform (one of: %s)\n", joinPlatforms(platforms, ", "))
	b.WriteString("   - Content description/idea (detailed, actionable, specific, tailored to the selected platform's best practices)\n")
	b.WriteString("   - Post type (entertaining, inspiring, educational, connect, or promotional)\n")
	b.WriteString("   - Category/pillar it belongs to\n")
	b.WriteString("   - Topic within that category\n")
	b.WriteString("   - Funnel stage (top, middle, or bottom)\n")
	b.WriteString("   - Virality potential (0-100%, based on shareability and engagement potential for that specific platform)\n")

	fmt.Fprintf(&b, "\nIMPORTANT: Distribute posts across all selected platforms evenly. Each platform should have approximately %d posts. Make sure content is optimized for each platform's unique characteristics and audience behavior.\n", WindowDays/len(platforms))

	b.WriteString("\nReturn a JSON object with this structure:\n")
	b.WriteString("{\n")
	b.WriteString("  \"businessType\": \"extracted business type\",\n")
	b.WriteString("  \"targetAudience\": \"extracted target audience\",\n")
	b.WriteString("  \"contentPillars\": [\"pillar1\", \"pillar2\", ...],\n")
	b.WriteString("  \"funnelDistribution\": {\n")
	fmt.Fprintf(&b, "    \"top\": %d,\n", dist.Top)
	fmt.Fprintf(&b, "    \"middle\": %d,\n", dist.Middle)
	fmt.Fprintf(&b, "    \"bottom\": %d\n", dist.Bottom)
	b.WriteString("  },\n")
	b.WriteString("  \"posts\": [\n")
	b.WriteString("    {\n")
	b.WriteString("      \"date\": \"YYYY-MM-DD\",\n")
	fmt.Fprintf(&b, "      \"platform\": \"%s\",\n", joinPlatforms(platforms, "|"))
	b.WriteString("      \"content\": \"detailed post idea/description optimized for the selected platform\",\n")
	b.WriteString("      \"postType\": \"entertaining|inspiring|educational|connect|promotional\",\n")
	b.WriteString("      \"category\": \"pillar name\",\n")
	b.WriteString("      \"topic\": \"specific topic within category\",\n")
	b.WriteString("      \"goal\": \"awareness|nurturing|converting\",\n")
	b.WriteString("      \"funnelStage\": \"top|middle|bottom\",\n")
	b.WriteString("      \"virality\": 0-100\n")
	b.WriteString("    },\n")
	b.WriteString("    ... (30 posts total)\n")
	b.WriteString("  ]\n")
	b.WriteString("}\n")
	b.WriteString("\nEnsure the distribution matches the funnel percentages exactly.")

	return b.String()
}

func joinPlatforms(platforms []models.Platform, sep string) string {
	names := make([]string, 0, len(platforms))
	for _, p := range platforms {
		names = append(names, string(p))
	}
	return strings.Join(names, sep)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
