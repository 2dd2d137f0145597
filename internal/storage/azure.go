package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/google/uuid"
	"github.com/postpilot/calendar-bot/internal/models"
	"github.com/sirupsen/logrus"
)

const blobPrefix = "calendars/"

// AzureStorage persists calendars as JSON blobs in Azure Blob Storage
type AzureStorage struct {
	client        *azblob.Client
	containerName string
}

// Ensure AzureStorage implements CalendarStore
var _ CalendarStore = (*AzureStorage)(nil)

// NewAzureStorage creates a new Azure Storage client using managed identity
func NewAzureStorage(accountName, containerName string) (*AzureStorage, error) {
	if accountName == "" {
		return nil, fmt.Errorf("storage account name is required")
	}

	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)
	client, err := azblob.NewClient(serviceURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure blob client: %w", err)
	}

	storage := &AzureStorage{
		client:        client,
		containerName: containerName,
	}

	if err := storage.ensureContainer(); err != nil {
		return nil, fmt.Errorf("failed to ensure container exists: %w", err)
	}

	return storage, nil
}

func (s *AzureStorage) ensureContainer() error {
	ctx := context.Background()

	_, err := s.client.CreateContainer(ctx, s.containerName, nil)
	if err != nil {
		if !strings.Contains(err.Error(), "ContainerAlreadyExists") {
			return fmt.Errorf("failed to create container: %w", err)
		}
		logrus.Debugf("Container %s already exists", s.containerName)
	} else {
		logrus.Infof("Created container %s", s.containerName)
	}

	return nil
}

// Save stores a calendar, assigning it an identifier and creation time and
// stamping the calendar's identifier onto each post.
func (s *AzureStorage) Save(calendar *models.Calendar) (*models.Calendar, error) {
	if calendar.ID == "" {
		calendar.ID = uuid.NewString()
	}
	if calendar.CreatedAt.IsZero() {
		calendar.CreatedAt = time.Now().UTC()
	}
	for i := range calendar.Posts {
		calendar.Posts[i].CalendarID = calendar.ID
	}

	data, err := json.Marshal(calendar)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal calendar: %w", err)
	}

	ctx := context.Background()
	_, err = s.client.UploadBuffer(ctx, s.containerName, blobName(calendar.ID), data, &azblob.UploadBufferOptions{
		BlockSize:   int64(1024 * 1024),
		Concurrency: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload calendar %s: %w", calendar.ID, err)
	}

	logrus.Infof("Stored calendar %s (%d posts)", calendar.ID, len(calendar.Posts))
	return calendar, nil
}

// Get retrieves a calendar by id
func (s *AzureStorage) Get(id string) (*models.Calendar, error) {
	ctx := context.Background()

	response, err := s.client.DownloadStream(ctx, s.containerName, blobName(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download calendar %s: %w", id, err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar %s: %w", id, err)
	}

	var calendar models.Calendar
	if err := json.Unmarshal(data, &calendar); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calendar %s: %w", id, err)
	}

	return &calendar, nil
}

// List returns all stored calendars
func (s *AzureStorage) List() ([]models.Calendar, error) {
	ctx := context.Background()

	var calendars []models.Calendar
	prefix := blobPrefix
	pager := s.client.NewListBlobsFlatPager(s.containerName, &azblob.ListBlobsFlatOptions{
		Prefix: &prefix,
	})

	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list calendars: %w", err)
		}

		for _, blob := range page.Segment.BlobItems {
			if blob.Name == nil {
				continue
			}
			id := strings.TrimSuffix(strings.TrimPrefix(*blob.Name, blobPrefix), ".json")
			calendar, err := s.Get(id)
			if err != nil {
				logrus.Errorf("Skipping unreadable calendar blob %s: %v", *blob.Name, err)
				continue
			}
			calendars = append(calendars, *calendar)
		}
	}

	return calendars, nil
}

// Delete removes a stored calendar
func (s *AzureStorage) Delete(id string) error {
	ctx := context.Background()

	_, err := s.client.DeleteBlob(ctx, s.containerName, blobName(id), nil)
	if err != nil {
		return fmt.Errorf("failed to delete calendar %s: %w", id, err)
	}

	logrus.Infof("Deleted calendar %s", id)
	return nil
}

func blobName(id string) string {
	return blobPrefix + id + ".json"
}
