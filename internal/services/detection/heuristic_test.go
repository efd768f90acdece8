package detection

import (
	"image"
	"image/color"
	"testing"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
)

func uniformGray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// splitGray fills the left half with a and the right half with b, which
// gives a controllable mean and contrast.
func splitGray(w, h int, a, b uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := a
			if x >= w/2 {
				v = b
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestHeuristicClassifier_Thresholds(t *testing.T) {
	tests := []struct {
		name     string
		crop     *image.Gray
		expected models.Emotion
	}{
		// mean 177.5, stddev 77.5
		{"bright high contrast", splitGray(48, 48, 255, 100), models.EmotionHappy},
		// mean 50, stddev 0
		{"dark flat", uniformGray(48, 48, 50), models.EmotionSad},
		// mean 100, stddev 100
		{"mid brightness high contrast", splitGray(48, 48, 0, 200), models.EmotionSurprise},
		// mean 120, stddev 0
		{"mid flat", uniformGray(48, 48, 120), models.EmotionNeutral},
	}

	c := NewHeuristicClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emotion, confidence, err := c.Classify(tt.crop)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if emotion != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, emotion)
			}
			if confidence != heuristicConfidence {
				t.Errorf("Expected fixed confidence %d, got %.1f", heuristicConfidence, confidence)
			}
		})
	}
}

func TestHeuristicClassifier_DeclinesWithoutCrop(t *testing.T) {
	c := NewHeuristicClassifier()

	if _, _, err := c.Classify(nil); err != ErrNoResult {
		t.Errorf("Expected ErrNoResult for nil crop, got %v", err)
	}
	if _, _, err := c.Classify(image.NewGray(image.Rect(0, 0, 0, 0))); err != ErrNoResult {
		t.Errorf("Expected ErrNoResult for empty crop, got %v", err)
	}
}

func TestGrayStats(t *testing.T) {
	mean, stddev := grayStats(uniformGray(10, 10, 200))
	if mean != 200 || stddev != 0 {
		t.Errorf("Expected (200, 0), got (%.2f, %.2f)", mean, stddev)
	}

	mean, stddev = grayStats(splitGray(10, 10, 0, 100))
	if mean != 50 || stddev != 50 {
		t.Errorf("Expected (50, 50), got (%.2f, %.2f)", mean, stddev)
	}
}
