package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/postpilot/calendar-bot/internal/models"
	"github.com/postpilot/calendar-bot/internal/prompt"
)

// rawCalendar mirrors the JSON schema the prompt documents. Field-level
// defects are tolerated here and repaired; only structural defects
// (unparsable JSON, wrong post count) surface as errors.
type rawCalendar struct {
	BusinessType       string                     `json:"businessType"`
	TargetAudience     string                     `json:"targetAudience"`
	ContentPillars     []string                   `json:"contentPillars"`
	FunnelDistribution *models.FunnelDistribution `json:"funnelDistribution"`
	Posts              []rawPost                  `json:"posts"`
}

type rawPost struct {
	Date        string   `json:"date"`
	Platform    string   `json:"platform"`
	Content     string   `json:"content"`
	PostType    string   `json:"postType"`
	Category    string   `json:"category"`
	Topic       string   `json:"topic"`
	Goal        string   `json:"goal"`
	FunnelStage string   `json:"funnelStage"`
	Virality    *float64 `json:"virality"`
}

// Defaults substituted for posts the model left incomplete.
const (
	defaultPostType = models.PostTypeEducational
	defaultCategory = "General"
	defaultTopic    = "Content"
	defaultGoal     = models.GoalAwareness
	defaultStage    = models.FunnelTop
	defaultVirality = 50
)

var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*\\})\\s*```")

// stripCodeFence removes a markdown code fence around a JSON payload.
// Models without structured-output enforcement wrap their answer this way
// despite the system instruction.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if match := fencedJSONRe.FindStringSubmatch(text); match != nil {
		return strings.TrimSpace(match[1])
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// parseResponse decodes a backend response and enforces the exactly-30-posts
// invariant. Any error here is a validation failure and advances the
// fallback chain.
func parseResponse(text string) (*rawCalendar, error) {
	var parsed rawCalendar
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse model response as JSON: %w", err)
	}

	if len(parsed.Posts) != prompt.WindowDays {
		return nil, fmt.Errorf("invalid number of posts generated: %d, expected exactly %d", len(parsed.Posts), prompt.WindowDays)
	}

	return &parsed, nil
}

// repairPosts turns the model's posts into validated domain posts, applying
// the index-aligned substitution policy: a defective date or platform is
// replaced by the value derived from the post's array position, never by a
// nearest-match heuristic.
func repairPosts(posts []rawPost, dates []string, platforms []models.Platform) []models.Post {
	windowDates := make(map[string]bool, len(dates))
	for _, d := range dates {
		windowDates[d] = true
	}

	repaired := make([]models.Post, 0, len(posts))
	for i, raw := range posts {
		repaired = append(repaired, repairPost(raw, i, dates, windowDates, platforms))
	}
	return repaired
}

func repairPost(raw rawPost, index int, dates []string, windowDates map[string]bool, platforms []models.Platform) models.Post {
	date := raw.Date
	if !windowDates[date] {
		date = dates[index]
	}

	platform := models.Platform(raw.Platform)
	if !platformInSet(platform, platforms) {
		platform = platforms[index%len(platforms)]
	}

	content := raw.Content
	if content == "" {
		content = fmt.Sprintf("Post idea for %s", date)
	}

	postType := models.PostType(raw.PostType)
	if !models.ValidPostType(raw.PostType) {
		postType = defaultPostType
	}

	category := raw.Category
	if category == "" {
		category = defaultCategory
	}

	topic := raw.Topic
	if topic == "" {
		topic = defaultTopic
	}

	goal := models.Goal(raw.Goal)
	if !models.ValidGoal(raw.Goal) {
		goal = defaultGoal
	}

	stage := models.FunnelStage(raw.FunnelStage)
	if !models.ValidFunnelStage(raw.FunnelStage) {
		stage = defaultStage
	}

	return models.Post{
		ID:          uuid.NewString(),
		Date:        date,
		Platform:    platform,
		Content:     content,
		PostType:    postType,
		Category:    category,
		Topic:       topic,
		Goal:        goal,
		FunnelStage: stage,
		Virality:    clampVirality(raw.Virality),
	}
}

func platformInSet(platform models.Platform, platforms []models.Platform) bool {
	for _, p := range platforms {
		if p == platform {
			return true
		}
	}
	return false
}

func clampVirality(v *float64) int {
	if v == nil {
		return defaultVirality
	}
	score := int(*v)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
