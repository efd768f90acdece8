package repository

import (
	"time"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
)

// DetectionRepository defines the interface for detection history operations.
type DetectionRepository interface {
	// Create operations
	Insert(rec *models.DetectionRecord) (int64, error)
	InsertBatch(records []models.DetectionRecord) error

	// Read operations
	GetByFilter(filter *models.DetectionFilter) ([]models.DetectionRecord, error)
	Count(filter *models.DetectionFilter) (int, error)
	Analytics(sessionID string, since time.Time, frameInterval time.Duration) (*models.Analytics, error)

	// Delete operations
	DeleteOlderThan(cutoff time.Time) (int64, error)
}
