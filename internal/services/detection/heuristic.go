package detection

import (
	"image"
	"math"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
)

// heuristicConfidence is deliberately conservative: photometric cues
// are a weak signal and must never look like a model reading.
const heuristicConfidence = 50

// HeuristicClassifier estimates a coarse emotion from brightness and
// contrast of the face crop when no learned model is available.
type HeuristicClassifier struct{}

func NewHeuristicClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{}
}

func (c *HeuristicClassifier) Tier() models.Tier {
	return models.TierHeuristic
}

// Classify maps mean brightness and contrast of the crop to the nearest
// enumerated emotion by fixed thresholds.
func (c *HeuristicClassifier) Classify(crop *image.Gray) (models.Emotion, float64, error) {
	if crop == nil || crop.Bounds().Empty() {
		return "", 0, ErrNoResult
	}

	brightness, contrast := grayStats(crop)

	var emotion models.Emotion
	switch {
	case brightness > 160 && contrast > 55:
		emotion = models.EmotionHappy
	case brightness < 80 && contrast < 45:
		emotion = models.EmotionSad
	case contrast > 60:
		emotion = models.EmotionSurprise
	default:
		emotion = models.EmotionNeutral
	}

	return emotion, heuristicConfidence, nil
}

// grayStats computes mean intensity and its standard deviation.
func grayStats(img *image.Gray) (mean, stddev float64) {
	bounds := img.Bounds()
	n := float64(bounds.Dx() * bounds.Dy())
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sum += float64(img.GrayAt(x, y).Y)
		}
	}
	mean = sum / n

	var sq float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			d := float64(img.GrayAt(x, y).Y) - mean
			sq += d * d
		}
	}
	return mean, math.Sqrt(sq / n)
}
