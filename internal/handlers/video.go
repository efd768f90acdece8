package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/config"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/logger"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services/vision"
)

const mjpegBoundary = "frame"

// VideoFeedHandler streams live frames as multipart MJPEG. Each viewer
// gets its own frame source; the stream runs at the configured cadence
// until the client disconnects. Frames the source cannot produce in
// time are skipped, never queued.
func VideoFeedHandler(monitor *services.Monitor, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		source, err := monitor.OpenFeed()
		if err != nil {
			logger.Error("Failed to open video feed source: %v", err)
			writeError(w, http.StatusServiceUnavailable, "video feed unavailable")
			return
		}
		defer source.Close()

		w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+mjpegBoundary)
		w.Header().Set("Cache-Control", "no-cache")

		ticker := time.NewTicker(cfg.StreamInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-ticker.C:
				frame, err := source.Next()
				if err != nil {
					if errors.Is(err, vision.ErrUnavailable) {
						continue
					}
					logger.Error("Video feed capture failed: %v", err)
					return
				}
				if len(frame.JPEG) == 0 {
					continue
				}
				if err := writeMJPEGPart(w, frame.JPEG); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeMJPEGPart(w http.ResponseWriter, jpeg []byte) error {
	if _, err := fmt.Fprintf(w, "--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", mjpegBoundary, len(jpeg)); err != nil {
		return err
	}
	if _, err := w.Write(jpeg); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, "\r\n")
	return err
}
