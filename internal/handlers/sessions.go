package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/config"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/dto"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/logger"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services"
)

// StartSessionHandler begins a monitoring session. Idempotent: starting
// a running session reports running=true, changed=false.
func StartSessionHandler(monitor *services.Monitor, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		id := sessionID(r, cfg)
		changed := monitor.StartSession(id)
		if !changed {
			logger.Debug("Session %s already running", id)
		}

		writeJSON(w, http.StatusOK, dto.SessionResponse{
			SessionID: id,
			Running:   true,
			Changed:   changed,
		})
	}
}

// StopSessionHandler stops a monitoring session. Idempotent.
func StopSessionHandler(monitor *services.Monitor, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		id := sessionID(r, cfg)
		changed := monitor.StopSession(id)
		if !changed {
			logger.Debug("Session %s was not running", id)
		}

		writeJSON(w, http.StatusOK, dto.SessionResponse{
			SessionID: id,
			Running:   false,
			Changed:   changed,
		})
	}
}

// ListSessionsHandler lists active session IDs.
func ListSessionsHandler(monitor *services.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, map[string][]string{
			"sessions": monitor.ActiveSessions(),
		})
	}
}

// sessionID reads the session ID from the JSON body or query string,
// falling back to the configured default.
func sessionID(r *http.Request, cfg *config.Config) string {
	var req dto.SessionRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	if req.SessionID != "" {
		return req.SessionID
	}
	if id := r.URL.Query().Get("session_id"); id != "" {
		return id
	}
	return cfg.DefaultSessionID
}
