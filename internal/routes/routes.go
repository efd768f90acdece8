package routes

import (
	"net/http"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/config"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/handlers"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/logger"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/middleware"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/repository"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services/websocket"
)

// SetupRoutes registers the API endpoints, the live websocket feed, and
// wraps the mux with the CORS middleware.
func SetupRoutes(monitor *services.Monitor, hub *websocket.HubService, repo repository.DetectionRepository, cfg *config.Config, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health and capabilities
	mux.HandleFunc("/api/health", handlers.HealthHandler(monitor, hub))

	// Session control
	mux.HandleFunc("/api/sessions/start", handlers.StartSessionHandler(monitor, cfg, logger))
	mux.HandleFunc("/api/sessions/stop", handlers.StopSessionHandler(monitor, cfg, logger))
	mux.HandleFunc("/api/sessions", handlers.ListSessionsHandler(monitor))

	// Detection history and analytics
	mux.HandleFunc("/api/detection", handlers.CreateDetectionHandler(monitor, repo, cfg, logger))
	mux.HandleFunc("/api/detections", handlers.GetDetectionsHandler(repo, cfg, logger))
	mux.HandleFunc("/api/analytics", handlers.AnalyticsHandler(repo, cfg, logger))
	mux.HandleFunc("/api/export/csv", handlers.ExportCSVHandler(repo, cfg, logger))

	// Live feeds
	mux.HandleFunc("/api/video_feed", handlers.VideoFeedHandler(monitor, cfg, logger))
	mux.HandleFunc("/ws/detections", handlers.ViewWebsocketHandler(hub, logger))

	return middleware.CORS(cfg.CORSOrigins)(mux)
}
