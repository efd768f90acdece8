package detection

import (
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
)

// DNNClassifier runs a deep emotion network over a face crop. The same
// implementation backs both model tiers; they differ in model file,
// input geometry and output label order.
type DNNClassifier struct {
	mu        sync.Mutex
	tier      models.Tier
	net       gocv.Net
	inputSize int
	labels    []models.Emotion
}

// NewSpecializedClassifier loads the FER+-style joint face+emotion
// model (64x64 grayscale input, 8 outputs). The contempt output has no
// counterpart in the reported set and is folded into neutral.
func NewSpecializedClassifier(modelPath string) (*DNNClassifier, error) {
	return newDNNClassifier(models.TierSpecialized, modelPath, 64, []models.Emotion{
		models.EmotionNeutral,
		models.EmotionHappy,
		models.EmotionSurprise,
		models.EmotionSad,
		models.EmotionAngry,
		models.EmotionDisgust,
		models.EmotionFear,
		models.EmotionNeutral, // contempt
	})
}

// NewGeneralClassifier loads the FER-2013-style general emotion
// classifier (48x48 grayscale input, 7 outputs).
func NewGeneralClassifier(modelPath string) (*DNNClassifier, error) {
	return newDNNClassifier(models.TierGeneral, modelPath, 48, []models.Emotion{
		models.EmotionAngry,
		models.EmotionDisgust,
		models.EmotionFear,
		models.EmotionHappy,
		models.EmotionSad,
		models.EmotionSurprise,
		models.EmotionNeutral,
	})
}

func newDNNClassifier(tier models.Tier, modelPath string, inputSize int, labels []models.Emotion) (*DNNClassifier, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}

	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load network: %s", modelPath)
	}
	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		net.Close()
		return nil, fmt.Errorf("failed to set network backend: %w", err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		net.Close()
		return nil, fmt.Errorf("failed to set network target: %w", err)
	}

	return &DNNClassifier{
		tier:      tier,
		net:       net,
		inputSize: inputSize,
		labels:    labels,
	}, nil
}

func (c *DNNClassifier) Tier() models.Tier {
	return c.tier
}

// Classify runs one forward pass and returns the dominant emotion with
// confidence 100 x its probability.
func (c *DNNClassifier) Classify(crop *image.Gray) (models.Emotion, float64, error) {
	if crop == nil || crop.Bounds().Empty() {
		return "", 0, ErrNoResult
	}

	mat, err := gocv.ImageGrayToMatGray(crop)
	if err != nil {
		return "", 0, fmt.Errorf("failed to convert crop: %w", err)
	}
	defer mat.Close()

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(mat, &resized, image.Pt(c.inputSize, c.inputSize), 0, 0, gocv.InterpolationLinear)

	blob := gocv.BlobFromImage(resized, 1.0, image.Pt(c.inputSize, c.inputSize),
		gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	c.mu.Lock()
	c.net.SetInput(blob, "")
	output := c.net.Forward("")
	c.mu.Unlock()
	defer output.Close()

	scores := make([]float64, len(c.labels))
	for i := range scores {
		scores[i] = float64(output.GetFloatAt(0, i))
	}
	probs := softmax(scores)

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	if probs[best] == 0 {
		return "", 0, ErrNoResult
	}

	return c.labels[best], 100 * probs[best], nil
}

// Close releases the network.
func (c *DNNClassifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.net.Close()
}

// softmax converts raw logits into a probability distribution. Shifting
// by the max keeps the exponentials finite.
func softmax(scores []float64) []float64 {
	if len(scores) == 0 {
		return nil
	}
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	probs := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		probs[i] = math.Exp(s - max)
		sum += probs[i]
	}
	if sum == 0 {
		return probs
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
