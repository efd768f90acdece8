package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/config"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/logger"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/repository"
)

// ExportCSVHandler streams the detection history for the last N days as
// a CSV attachment.
func ExportCSVHandler(repo repository.DetectionRepository, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
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
		days := atoiDefault(query.Get("days"), 7)

		records, err := repo.GetByFilter(&models.DetectionFilter{
			SessionID: sessionID,
			After:     time.Now().AddDate(0, 0, -days),
		})
		if err != nil {
			logger.Error("Failed to query detections for export: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to query detections")
			return
		}

		filename := fmt.Sprintf("detections_%s_%s.csv", sessionID, time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)

		writer := csv.NewWriter(w)
		defer writer.Flush()

		writer.Write([]string{"id", "session_id", "timestamp", "is_present", "emotion", "confidence", "detector_tier"})
		for _, rec := range records {
			writer.Write([]string{
				strconv.FormatInt(rec.ID, 10),
				rec.SessionID,
				rec.Timestamp.Format(time.RFC3339),
				strconv.FormatBool(rec.IsPresent),
				rec.Emotion,
				strconv.FormatFloat(rec.Confidence, 'f', 1, 64),
				rec.DetectorTier,
			})
		}

		logger.Info("Exported %d detection records for session %s", len(records), sessionID)
	}
}
