// Package storage persists detection events. Events are buffered in
// memory and flushed to the repository in batches so the per-frame path
// never waits on a disk transaction.
package storage

import (
	"context"
	"sync"
	"time"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/logger"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/repository"
)

type BufferService struct {
	mu      sync.Mutex
	repo    repository.DetectionRepository
	records []models.DetectionRecord
	limit   int
	logger  *logger.Logger
}

func NewBufferService(repo repository.DetectionRepository, limit int, logger *logger.Logger) *BufferService {
	return &BufferService{
		repo:    repo,
		records: make([]models.DetectionRecord, 0, limit),
		limit:   limit,
		logger:  logger,
	}
}

func (s *BufferService) Name() string {
	return "storage"
}

// OnEvent buffers the event's persisted form. The buffer is flushed
// when it reaches its limit.
func (s *BufferService) OnEvent(event *models.DetectionEvent) error {
	s.mu.Lock()
	s.records = append(s.records, models.RecordFromEvent(event))
	full := len(s.records) >= s.limit
	s.mu.Unlock()

	if full {
		return s.Flush()
	}
	return nil
}

// Run flushes the buffer on the given interval until ctx is cancelled,
// then performs a final flush.
func (s *BufferService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := s.Flush(); err != nil {
				s.logger.Error("Final flush failed: %v", err)
			}
			return
		case <-ticker.C:
			if err := s.Flush(); err != nil {
				s.logger.Error("Periodic flush failed: %v", err)
			}
		}
	}
}

// Flush writes all buffered records in one transaction. Records are
// requeued on failure so a transient database error loses nothing.
func (s *BufferService) Flush() error {
	s.mu.Lock()
	if len(s.records) == 0 {
		s.mu.Unlock()
		return nil
	}
	batch := s.records
	s.records = make([]models.DetectionRecord, 0, s.limit)
	s.mu.Unlock()

	if err := s.repo.InsertBatch(batch); err != nil {
		s.mu.Lock()
		s.records = append(batch, s.records...)
		s.mu.Unlock()
		return err
	}

	s.logger.Debug("Flushed %d detection records", len(batch))
	return nil
}

// Pending returns the number of unflushed records.
func (s *BufferService) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
