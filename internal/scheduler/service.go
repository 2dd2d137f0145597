package scheduler

import (
	"time"

	"github.com/postpilot/calendar-bot/internal/config"
	"github.com/postpilot/calendar-bot/internal/storage"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service runs the retention cleanup for stored calendars
type Service struct {
	config *config.Config
	store  storage.CalendarStore
	cron   *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, store storage.CalendarStore) *Service {
	return &Service{
		config: cfg,
		store:  store,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled cleanup, daily at 3 AM UTC
func (s *Service) Start() error {
	_, err := s.cron.AddFunc("0 0 3 * * *", func() {
		logrus.Info("Starting scheduled calendar cleanup")
		if err := s.RunCleanup(); err != nil {
			logrus.Errorf("Scheduled calendar cleanup failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started, retaining calendars for %d days", s.config.RetentionDays)
	return nil
}

// RunCleanup deletes stored calendars older than the retention period
func (s *Service) RunCleanup() error {
	cutoff := time.Now().AddDate(0, 0, -s.config.RetentionDays)

	calendars, err := s.store.List()
	if err != nil {
		return err
	}

	deleted := 0
	for _, calendar := range calendars {
		if calendar.CreatedAt.After(cutoff) {
			continue
		}
		if err := s.store.Delete(calendar.ID); err != nil {
			logrus.Errorf("Failed to delete expired calendar %s: %v", calendar.ID, err)
			continue
		}
		deleted++
	}

	logrus.Infof("Calendar cleanup completed, deleted %d of %d calendars", deleted, len(calendars))
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
