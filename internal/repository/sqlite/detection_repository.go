package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
)

// DetectionRepository implements repository.DetectionRepository for SQLite.
type DetectionRepository struct {
	db *DB
}

// NewDetectionRepository creates a new SQLite detection repository.
func NewDetectionRepository(db *DB) *DetectionRepository {
	return &DetectionRepository{db: db}
}

// Insert adds a new detection record to the database.
func (r *DetectionRepository) Insert(rec *models.DetectionRecord) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO detections (session_id, timestamp, is_present, emotion, confidence, detector_tier)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.SessionID, rec.Timestamp.UTC(), boolToInt(rec.IsPresent), rec.Emotion, rec.Confidence, rec.DetectorTier)
	if err != nil {
		return 0, fmt.Errorf("failed to insert detection: %w", err)
	}

	return result.LastInsertId()
}

// InsertBatch adds multiple detection records in a single transaction.
func (r *DetectionRepository) InsertBatch(records []models.DetectionRecord) error {
	if len(records) == 0 {
		return nil
	}

	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO detections (session_id, timestamp, is_present, emotion, confidence, detector_tier)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(rec.SessionID, rec.Timestamp.UTC(), boolToInt(rec.IsPresent), rec.Emotion, rec.Confidence, rec.DetectorTier); err != nil {
			return fmt.Errorf("failed to insert detection: %w", err)
		}
	}

	return tx.Commit()
}

// GetByFilter retrieves detection records matching the filter, newest first.
func (r *DetectionRepository) GetByFilter(filter *models.DetectionFilter) ([]models.DetectionRecord, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query, args := buildFilterQuery(
		`SELECT id, session_id, timestamp, is_present, emotion, confidence, detector_tier FROM detections`,
		filter,
	)
	query += ` ORDER BY timestamp DESC`
	if filter != nil && filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query detections: %w", err)
	}
	defer rows.Close()

	var records []models.DetectionRecord
	for rows.Next() {
		var rec models.DetectionRecord
		var present int
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Timestamp, &present, &rec.Emotion, &rec.Confidence, &rec.DetectorTier); err != nil {
			return nil, fmt.Errorf("failed to scan detection: %w", err)
		}
		rec.IsPresent = present != 0
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Count returns the number of records matching the filter.
func (r *DetectionRepository) Count(filter *models.DetectionFilter) (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query, args := buildFilterQuery(`SELECT COUNT(*) FROM detections`, filter)

	var count int
	if err := r.db.Conn().QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count detections: %w", err)
	}
	return count, nil
}

// Analytics aggregates the detection history for a session since the
// given time. Working hours are estimated from the presence count and
// the processing cadence.
func (r *DetectionRepository) Analytics(sessionID string, since time.Time, frameInterval time.Duration) (*models.Analytics, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var total, present int
	err := r.db.Conn().QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(is_present), 0)
		FROM detections WHERE session_id = ? AND timestamp >= ?
	`, sessionID, since.UTC()).Scan(&total, &present)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate detections: %w", err)
	}

	analytics := &models.Analytics{
		TotalDetections:     total,
		EmotionDistribution: make(map[string]int),
	}
	if total == 0 {
		return analytics, nil
	}
	analytics.PresencePercentage = round2(float64(present) / float64(total) * 100)
	analytics.WorkingHours = round2(float64(present) * frameInterval.Hours())

	rows, err := r.db.Conn().Query(`
		SELECT emotion, COUNT(*)
		FROM detections
		WHERE session_id = ? AND timestamp >= ? AND is_present = 1 AND emotion != ''
		GROUP BY emotion
	`, sessionID, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query emotion distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var emotion string
		var count int
		if err := rows.Scan(&emotion, &count); err != nil {
			return nil, fmt.Errorf("failed to scan emotion count: %w", err)
		}
		analytics.EmotionDistribution[emotion] = count
	}

	return analytics, rows.Err()
}

// DeleteOlderThan removes records with a timestamp before the cutoff
// and returns how many were deleted.
func (r *DetectionRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`DELETE FROM detections WHERE timestamp < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete detections: %w", err)
	}
	return result.RowsAffected()
}

func buildFilterQuery(base string, filter *models.DetectionFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter != nil {
		if filter.SessionID != "" {
			clauses = append(clauses, "session_id = ?")
			args = append(args, filter.SessionID)
		}
		if !filter.After.IsZero() {
			clauses = append(clauses, "timestamp >= ?")
			args = append(args, filter.After.UTC())
		}
		if !filter.Before.IsZero() {
			clauses = append(clauses, "timestamp <= ?")
			args = append(args, filter.Before.UTC())
		}
	}

	if len(clauses) > 0 {
		base += " WHERE " + strings.Join(clauses, " AND ")
	}
	return base, args
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
