package notifications

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/postpilot/calendar-bot/internal/config"
	"github.com/postpilot/calendar-bot/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Service announces finished calendars via the configured channels. Both
// channels are optional; with neither configured the service is a no-op.
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// webhookMessage is the payload posted to the configured webhook.
type webhookMessage struct {
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	Platforms []string `json:"platforms"`
	PostCount int      `json:"post_count"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendCalendarReady notifies the configured channels that a calendar was
// generated, attaching the iCalendar export to the email channel.
func (s *Service) SendCalendarReady(calendar *models.Calendar, ics string) error {
	var errors []string

	if s.config.WebhookURL != "" {
		if err := s.sendToWebhook(calendar); err != nil {
			logrus.Errorf("Failed to send webhook notification: %v", err)
			errors = append(errors, fmt.Sprintf("Webhook: %v", err))
		} else {
			logrus.Info("Successfully sent calendar notification to webhook")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(calendar, ics); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent calendar notification via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToWebhook(calendar *models.Calendar) error {
	platforms := make([]string, 0, len(calendar.Platforms))
	for _, p := range calendar.Platforms {
		platforms = append(platforms, string(p))
	}

	message := &webhookMessage{
		Title:     "Content calendar ready",
		Text:      fmt.Sprintf("Generated a %d-day calendar for %s starting %s", len(calendar.Posts), strings.Join(platforms, ", "), firstDate(calendar)),
		Platforms: platforms,
		PostCount: len(calendar.Posts),
	}

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.WebhookURL)

	if err != nil {
		return fmt.Errorf("failed to post webhook message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) sendEmail(calendar *models.Calendar, ics string) error {
	subject := fmt.Sprintf("Your 30-day content calendar is ready (%d posts)", len(calendar.Posts))

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", s.buildEmailText(calendar))

	if ics != "" {
		m.Attach("social-calendar.ics",
			gomail.SetHeader(map[string][]string{"Content-Type": {"text/calendar; charset=utf-8"}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write([]byte(ics))
				return err
			}))
	}

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *Service) buildEmailText(calendar *models.Calendar) string {
	var text strings.Builder

	text.WriteString("Your social media content calendar is ready.\n\n")
	if calendar.BusinessType != "" {
		text.WriteString(fmt.Sprintf("Business: %s\n", calendar.BusinessType))
	}
	if calendar.TargetAudience != "" {
		text.WriteString(fmt.Sprintf("Audience: %s\n", calendar.TargetAudience))
	}

	text.WriteString(fmt.Sprintf("Posts: %d, starting %s\n", len(calendar.Posts), firstDate(calendar)))

	if len(calendar.ContentPillars) > 0 {
		text.WriteString(fmt.Sprintf("Content pillars: %s\n", strings.Join(calendar.ContentPillars, ", ")))
	}

	text.WriteString(fmt.Sprintf("Funnel targets: top %d%%, middle %d%%, bottom %d%%\n",
		calendar.FunnelDistribution.Top, calendar.FunnelDistribution.Middle, calendar.FunnelDistribution.Bottom))

	text.WriteString("\nThe attached .ics file imports into any calendar application.\n")

	return text.String()
}

func firstDate(calendar *models.Calendar) string {
	if len(calendar.Posts) == 0 {
		return "today"
	}
	return calendar.Posts[0].Date
}
