package detection

import (
	"os"

	"gocv.io/x/gocv"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/config"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/logger"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
)

// Probe checks once at startup which detection tiers and devices are
// usable. The result is immutable; unavailable capabilities are logged
// here and never again per frame.
func Probe(cfg *config.Config, logger *logger.Logger) models.Capabilities {
	caps := models.Capabilities{
		FaceLocator:      fileExists(cfg.HaarCascadePath),
		SpecializedModel: fileExists(cfg.SpecializedModelPath),
		GeneralModel:     fileExists(cfg.GeneralModelPath),
		Camera:           cameraUsable(cfg.CameraDevice),
	}

	if !caps.FaceLocator {
		logger.Warning("Face cascade not found at %s - face location disabled", cfg.HaarCascadePath)
	}
	if !caps.SpecializedModel {
		logger.Warning("Specialized emotion model not found at %s", cfg.SpecializedModelPath)
	}
	if !caps.GeneralModel {
		logger.Warning("General emotion model not found at %s", cfg.GeneralModelPath)
	}
	if !caps.Camera {
		logger.Warning("Camera device %d not usable - running in demo mode", cfg.CameraDevice)
	}
	logger.Info("Detection capabilities probed: mode=%s", caps.Mode())

	return caps
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// cameraUsable opens and immediately releases the device to confirm it
// exists. The session loop opens its own handle later.
func cameraUsable(device int) bool {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return false
	}
	defer capture.Close()
	return capture.IsOpened()
}
