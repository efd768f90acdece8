package detection

import (
	"image"
	"math/rand"
	"sync"
	"time"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
)

// SimulatedClassifier produces pseudo-random emotions when no image
// signal is usable at all, keeping downstream consumers exercised in
// demo mode. Its results are tagged with the simulated tier and must
// never be conflated with a real reading.
type SimulatedClassifier struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatedClassifier() *SimulatedClassifier {
	return &SimulatedClassifier{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *SimulatedClassifier) Tier() models.Tier {
	return models.TierSimulated
}

// Classify draws a weighted random emotion, preferring calm states so
// demo output looks plausible. It accepts a nil crop.
func (c *SimulatedClassifier) Classify(_ *image.Gray) (models.Emotion, float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	roll := c.rng.Float64()
	var emotion models.Emotion
	switch {
	case roll < 0.4:
		emotion = models.EmotionNeutral
	case roll < 0.7:
		emotion = models.EmotionHappy
	case roll < 0.9:
		emotion = models.EmotionSad
	default:
		emotion = models.EmotionSurprise
	}

	confidence := 70 + c.rng.Float64()*15
	return emotion, confidence, nil
}
