package notifications

import "github.com/postpilot/calendar-bot/internal/models"

// NotificationInterface defines the contract for notification services
type NotificationInterface interface {
	SendCalendarReady(calendar *models.Calendar, ics string) error
}
