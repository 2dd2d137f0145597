package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/postpilot/calendar-bot/internal/backends"
	"github.com/postpilot/calendar-bot/internal/config"
	"github.com/postpilot/calendar-bot/internal/models"
	"github.com/postpilot/calendar-bot/internal/prompt"
	"github.com/postpilot/calendar-bot/internal/strategy"
	"github.com/sirupsen/logrus"
)

// Service runs the calendar generation pipeline: prompt assembly, the model
// fallback chain, response normalization, and final assembly. It holds no
// per-request state, so concurrent Generate calls are safe.
type Service struct {
	config   *config.Config
	backends []backends.Backend
	now      func() time.Time
	metrics  *Metrics
	mu       sync.RWMutex
}

// Metrics holds generation metrics
type Metrics struct {
	TotalGenerated  int            `json:"total_generated"`
	LastRun         time.Time      `json:"last_run"`
	LastRunDuration string         `json:"last_run_duration"`
	LastModelUsed   string         `json:"last_model_used"`
	ModelSuccesses  map[string]int `json:"model_successes"`
	ModelFailures   map[string]int `json:"model_failures"`
	ErrorCount      int            `json:"error_count"`
}

// NewService creates a generation service. loc is the authoritative timezone
// for computing the 30-day date window.
func NewService(cfg *config.Config, loc *time.Location) *Service {
	service := &Service{
		config: cfg,
		now: func() time.Time {
			return time.Now().In(loc)
		},
		metrics: &Metrics{
			ModelSuccesses: make(map[string]int),
			ModelFailures:  make(map[string]int),
		},
	}

	for _, model := range cfg.Models {
		service.backends = append(service.backends, backends.NewOpenAIBackend(model, cfg.OpenAIAPIKey, cfg.OpenAIAPIURL))
	}

	return service
}

// Generate produces a complete 30-day calendar for the request, trying each
// configured backend in order until one yields a response that survives
// validation. It returns either a fully-formed calendar or an error; partial
// calendars are never returned.
func (s *Service) Generate(ctx context.Context, req models.GenerationRequest) (*models.Calendar, error) {
	start := time.Now()

	if req.InputText == "" {
		return nil, fmt.Errorf("input text is required")
	}

	platforms := strategy.NormalizePlatforms(req.Platforms)
	dist := strategy.DistributionFor(req.AccountMaturity)
	dates := prompt.DateWindow(s.now())
	userPrompt := prompt.Build(req, platforms, dist, dates)

	logrus.Infof("Generating calendar for %d platforms, window starting %s", len(platforms), dates[0])

	var lastErr error
	for _, backend := range s.backends {
		systemPrompt := prompt.SystemInstruction(backend.SupportsJSONMode())

		raw, err := backend.Generate(ctx, systemPrompt, userPrompt)
		if err != nil {
			logrus.Warnf("Model %s failed: %v", backend.GetName(), err)
			s.recordFailure(backend.GetName())
			lastErr = err
			continue
		}

		parsed, err := parseResponse(raw)
		if err != nil {
			logrus.Warnf("Model %s returned invalid response: %v", backend.GetName(), err)
			s.recordFailure(backend.GetName())
			lastErr = err
			continue
		}

		posts := repairPosts(parsed.Posts, dates, platforms)
		calendar := assemble(req, platforms, dist, parsed, posts)

		s.recordSuccess(backend.GetName(), time.Since(start))
		logrus.Infof("Successfully generated calendar using model %s in %v", backend.GetName(), time.Since(start))
		return calendar, nil
	}

	return nil, fmt.Errorf("all backends exhausted after trying %d models: %w", len(s.backends), lastErr)
}

// assemble combines repaired posts with top-level fields, preferring values
// the model extracted and falling back to the caller's hints and the
// requested distribution.
func assemble(req models.GenerationRequest, platforms []models.Platform, dist models.FunnelDistribution, parsed *rawCalendar, posts []models.Post) *models.Calendar {
	calendar := &models.Calendar{
		InputText:          req.InputText,
		BusinessType:       parsed.BusinessType,
		TargetAudience:     parsed.TargetAudience,
		Platforms:          platforms,
		ContentPillars:     parsed.ContentPillars,
		FunnelDistribution: dist,
		Posts:              posts,
	}

	if calendar.BusinessType == "" {
		calendar.BusinessType = req.BusinessType
	}
	if calendar.TargetAudience == "" {
		calendar.TargetAudience = req.TargetAudience
	}
	if calendar.ContentPillars == nil {
		calendar.ContentPillars = []string{}
	}
	if parsed.FunnelDistribution != nil {
		calendar.FunnelDistribution = *parsed.FunnelDistribution
	}

	return calendar
}

func (s *Service) recordSuccess(model string, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.TotalGenerated++
	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()
	s.metrics.LastModelUsed = model
	s.metrics.ModelSuccesses[model]++
}

func (s *Service) recordFailure(model string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.ErrorCount++
	s.metrics.ModelFailures[model]++
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
