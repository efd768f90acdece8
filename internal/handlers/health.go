package handlers

import (
	"net/http"
	"time"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/dto"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services/websocket"
)

// HealthHandler reports service status, the operating mode and the
// capability snapshot so clients can tell degraded operation apart from
// full detection.
func HealthHandler(monitor *services.Monitor, hub *websocket.HubService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		caps := monitor.Capabilities()
		writeJSON(w, http.StatusOK, dto.HealthResponse{
			Status:         "healthy",
			Timestamp:      time.Now().UTC(),
			Mode:           caps.Mode(),
			Degraded:       caps.Degraded(),
			Capabilities:   caps,
			ActiveSessions: monitor.ActiveSessions(),
			Viewers:        hub.ClientCount(),
		})
	}
}
