package dto

import (
	"time"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
)

// HealthResponse reports service status and the capability snapshot.
type HealthResponse struct {
	Status         string              `json:"status"`
	Timestamp      time.Time           `json:"timestamp"`
	Mode           string              `json:"mode"`
	Degraded       bool                `json:"degraded"`
	Capabilities   models.Capabilities `json:"capabilities"`
	ActiveSessions []string            `json:"active_sessions"`
	Viewers        int                 `json:"viewers"`
}

// SessionRequest addresses a monitoring session.
type SessionRequest struct {
	SessionID string `json:"session_id"`
}

// SessionResponse reports the outcome of a session control call.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Running   bool   `json:"running"`
	Changed   bool   `json:"changed"`
}

// DetectionsResponse wraps a page of detection records.
type DetectionsResponse struct {
	Detections []models.DetectionRecord `json:"detections"`
	Total      int                      `json:"total"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
