package detection

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/logger"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services/vision"
)

// HaarLocator finds faces with a classical Haar feature cascade.
// Deliberately not a deep model: it runs on every frame.
type HaarLocator struct {
	mu         sync.Mutex
	classifier gocv.CascadeClassifier
	logger     *logger.Logger
}

// NewHaarLocator loads the cascade definition from disk.
func NewHaarLocator(cascadePath string, logger *logger.Logger) (*HaarLocator, error) {
	if _, err := os.Stat(cascadePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("cascade file not found: %s", cascadePath)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cascadePath) {
		classifier.Close()
		return nil, fmt.Errorf("failed to load cascade: %s", cascadePath)
	}

	return &HaarLocator{classifier: classifier, logger: logger}, nil
}

// Locate returns all detected face regions in the frame, each with its
// grayscale crop. An undecodable frame yields no regions, not an error.
func (l *HaarLocator) Locate(frame *vision.Frame) ([]Region, error) {
	if frame == nil || frame.Gray == nil {
		return nil, nil
	}

	mat, err := gocv.ImageGrayToMatGray(frame.Gray)
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}
	defer mat.Close()

	l.mu.Lock()
	rects := l.classifier.DetectMultiScaleWithParams(
		mat, 1.3, 5, 0, image.Pt(30, 30), image.Pt(0, 0),
	)
	l.mu.Unlock()

	regions := make([]Region, 0, len(rects))
	for _, rect := range rects {
		clipped := rect.Intersect(frame.Gray.Bounds())
		if clipped.Empty() {
			continue
		}
		regions = append(regions, Region{Rect: clipped, Crop: copyCrop(frame.Gray, clipped)})
	}

	return regions, nil
}

// Close releases the underlying cascade.
func (l *HaarLocator) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.classifier.Close()
}
