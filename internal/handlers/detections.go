package handlers

import (
	"net/http"
	"time"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/config"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/dto"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/logger"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/repository"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services"
)

// GetDetectionsHandler returns detection history filtered by session
// and time range.
func GetDetectionsHandler(repo repository.DetectionRepository, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		query := r.URL.Query()

		after, err := parseTimeParam(query.Get("start_date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start_date: expected RFC3339")
			return
		}
		before, err := parseTimeParam(query.Get("end_date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end_date: expected RFC3339")
			return
		}

		sessionID := query.Get("session_id")
		if sessionID == "" {
			sessionID = cfg.DefaultSessionID
		}

		filter := &models.DetectionFilter{
			SessionID: sessionID,
			After:     after,
			Before:    before,
			Limit:     atoiDefault(query.Get("limit"), 100),
		}

		records, err := repo.GetByFilter(filter)
		if err != nil {
			logger.Error("Failed to query detections: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to query detections")
			return
		}
		total, err := repo.Count(filter)
		if err != nil {
			logger.Error("Failed to count detections: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to count detections")
			return
		}

		if records == nil {
			records = []models.DetectionRecord{}
		}
		writeJSON(w, http.StatusOK, dto.DetectionsResponse{
			Detections: records,
			Total:      total,
		})
	}
}

// CreateDetectionHandler captures and records a single detection on
// demand, outside any running session loop.
func CreateDetectionHandler(monitor *services.Monitor, repo repository.DetectionRepository, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		id := sessionID(r, cfg)
		event := monitor.DetectOnce(id)

		rec := models.RecordFromEvent(event)
		recID, err := repo.Insert(&rec)
		if err != nil {
			logger.Error("Failed to record detection: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to record detection")
			return
		}
		rec.ID = recID

		writeJSON(w, http.StatusOK, rec)
	}
}

// AnalyticsHandler aggregates detection history over the last N days.
func AnalyticsHandler(repo repository.DetectionRepository, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		query := r.URL.Query()
		sessionID := query.Get("session_id")
		if sessionID == "" {
			sessionID = cfg.DefaultSessionID
		}
		days := atoiDefault(query.Get("days"), 1)
		since := time.Now().AddDate(0, 0, -days)

		analytics, err := repo.Analytics(sessionID, since, cfg.FrameInterval)
		if err != nil {
			logger.Error("Failed to aggregate analytics: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to aggregate analytics")
			return
		}

		writeJSON(w, http.StatusOK, analytics)
	}
}
