package scheduler

import (
	"testing"
	"time"

	"github.com/postpilot/calendar-bot/internal/config"
	"github.com/postpilot/calendar-bot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore is a mock implementation of the calendar store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(calendar *models.Calendar) (*models.Calendar, error) {
	args := m.Called(calendar)
	return args.Get(0).(*models.Calendar), args.Error(1)
}

func (m *MockStore) Get(id string) (*models.Calendar, error) {
	args := m.Called(id)
	return args.Get(0).(*models.Calendar), args.Error(1)
}

func (m *MockStore) List() ([]models.Calendar, error) {
	args := m.Called()
	return args.Get(0).([]models.Calendar), args.Error(1)
}

func (m *MockStore) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestRunCleanup_deletesOnlyExpiredCalendars(t *testing.T) {
	store := &MockStore{}
	store.On("List").Return([]models.Calendar{
		{ID: "old", CreatedAt: time.Now().AddDate(0, 0, -100)},
		{ID: "recent", CreatedAt: time.Now().AddDate(0, 0, -5)},
	}, nil)
	store.On("Delete", "old").Return(nil)

	service := NewService(&config.Config{RetentionDays: 90}, store)
	require.NoError(t, service.RunCleanup())

	store.AssertCalled(t, "Delete", "old")
	store.AssertNotCalled(t, "Delete", "recent")
}

func TestRunCleanup_listFailure(t *testing.T) {
	store := &MockStore{}
	store.On("List").Return([]models.Calendar(nil), assert.AnError)

	service := NewService(&config.Config{RetentionDays: 90}, store)
	assert.Error(t, service.RunCleanup())
}

func TestRunCleanup_continuesPastDeleteFailures(t *testing.T) {
	store := &MockStore{}
	store.On("List").Return([]models.Calendar{
		{ID: "a", CreatedAt: time.Now().AddDate(0, 0, -100)},
		{ID: "b", CreatedAt: time.Now().AddDate(0, 0, -200)},
	}, nil)
	store.On("Delete", "a").Return(assert.AnError)
	store.On("Delete", "b").Return(nil)

	service := NewService(&config.Config{RetentionDays: 90}, store)
	require.NoError(t, service.RunCleanup())

	store.AssertCalled(t, "Delete", "b")
}
