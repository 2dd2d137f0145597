package storage

import "github.com/postpilot/calendar-bot/internal/models"

// CalendarStore defines the contract for calendar persistence. Save assigns
// the calendar's identity and creation time; the generation pipeline hands
// over calendars with both unset.
type CalendarStore interface {
	Save(calendar *models.Calendar) (*models.Calendar, error)
	Get(id string) (*models.Calendar, error)
	List() ([]models.Calendar, error)
	Delete(id string) error
}
