package detection

import (
	"errors"
	"image"
	"testing"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/logger"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
)

// fakeClassifier is a scriptable cascade tier.
type fakeClassifier struct {
	tier       models.Tier
	emotion    models.Emotion
	confidence float64
	err        error
	panics     bool
	calls      int
}

func (f *fakeClassifier) Tier() models.Tier {
	return f.tier
}

func (f *fakeClassifier) Classify(_ *image.Gray) (models.Emotion, float64, error) {
	f.calls++
	if f.panics {
		panic("scripted panic")
	}
	return f.emotion, f.confidence, f.err
}

func TestCascade_FirstUsableTierWins(t *testing.T) {
	first := &fakeClassifier{tier: models.TierSpecialized, emotion: models.EmotionHappy, confidence: 85}
	second := &fakeClassifier{tier: models.TierGeneral, emotion: models.EmotionSad, confidence: 70}

	cascade := NewCascadeWithTiers(logger.Discard(), first, second)
	emotion, confidence, tier := cascade.Classify(uniformGray(48, 48, 120))

	if emotion != models.EmotionHappy || confidence != 85 || tier != models.TierSpecialized {
		t.Errorf("Expected (happy, 85, specialized), got (%s, %.1f, %s)", emotion, confidence, tier)
	}
	if second.calls != 0 {
		t.Errorf("Second tier should not run when the first succeeds, got %d calls", second.calls)
	}
}

func TestCascade_FallsThroughOnError(t *testing.T) {
	specialized := &fakeClassifier{tier: models.TierSpecialized, err: errors.New("inference failed")}
	general := &fakeClassifier{tier: models.TierGeneral, emotion: models.EmotionSurprise, confidence: 70}

	cascade := NewCascadeWithTiers(logger.Discard(), specialized, general)
	emotion, confidence, tier := cascade.Classify(uniformGray(48, 48, 120))

	if emotion != models.EmotionSurprise {
		t.Errorf("Expected surprise from the fallback tier, got %s", emotion)
	}
	if confidence != 70 {
		t.Errorf("Expected confidence 70, got %.1f", confidence)
	}
	if tier != models.TierGeneral {
		t.Errorf("Expected tier attribution general, got %s", tier)
	}
	if specialized.calls != 1 {
		t.Errorf("Expected the failing tier to be tried once, got %d calls", specialized.calls)
	}
}

func TestCascade_AllTiersDeclined(t *testing.T) {
	cascade := NewCascadeWithTiers(logger.Discard(),
		&fakeClassifier{tier: models.TierSpecialized, err: ErrNoResult},
		&fakeClassifier{tier: models.TierGeneral, err: ErrNoResult},
	)

	emotion, confidence, tier := cascade.Classify(uniformGray(48, 48, 120))
	if emotion != models.EmotionNeutral || confidence != 0 || tier != models.TierNone {
		t.Errorf("Expected (neutral, 0, none), got (%s, %.1f, %s)", emotion, confidence, tier)
	}
}

func TestCascade_PanickingTierIsSkipped(t *testing.T) {
	bad := &fakeClassifier{tier: models.TierSpecialized, panics: true}
	good := &fakeClassifier{tier: models.TierHeuristic, emotion: models.EmotionNeutral, confidence: 50}

	cascade := NewCascadeWithTiers(logger.Discard(), bad, good)
	emotion, _, tier := cascade.Classify(uniformGray(48, 48, 120))

	if emotion != models.EmotionNeutral || tier != models.TierHeuristic {
		t.Errorf("Expected the panicking tier skipped, got (%s, %s)", emotion, tier)
	}
}

func TestCascade_InvalidEmotionIsSkipped(t *testing.T) {
	bogus := &fakeClassifier{tier: models.TierGeneral, emotion: "ecstatic", confidence: 99}
	good := &fakeClassifier{tier: models.TierHeuristic, emotion: models.EmotionHappy, confidence: 50}

	cascade := NewCascadeWithTiers(logger.Discard(), bogus, good)
	emotion, _, tier := cascade.Classify(uniformGray(48, 48, 120))

	if emotion != models.EmotionHappy || tier != models.TierHeuristic {
		t.Errorf("Expected the unknown label skipped, got (%s, %s)", emotion, tier)
	}
}

func TestCascade_ConfidenceClamped(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		expected float64
	}{
		{"above range", 142.5, 100},
		{"below range", -3, 0},
		{"in range", 61.2, 61.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cascade := NewCascadeWithTiers(logger.Discard(),
				&fakeClassifier{tier: models.TierGeneral, emotion: models.EmotionHappy, confidence: tt.raw})
			_, confidence, _ := cascade.Classify(uniformGray(48, 48, 120))
			if confidence != tt.expected {
				t.Errorf("Expected confidence %.1f, got %.1f", tt.expected, confidence)
			}
		})
	}
}

// With the always-available tiers in place, degenerate input still
// produces a valid classification.
func TestCascade_DegenerateInputNeverFails(t *testing.T) {
	cascade := NewCascadeWithTiers(logger.Discard(), NewHeuristicClassifier(), NewSimulatedClassifier())

	crops := map[string]*image.Gray{
		"nil":        nil,
		"empty":      image.NewGray(image.Rect(0, 0, 0, 0)),
		"one pixel":  uniformGray(1, 1, 255),
		"flat black": uniformGray(48, 48, 0),
	}

	for name, crop := range crops {
		emotion, confidence, tier := cascade.Classify(crop)
		if !emotion.Valid() {
			t.Errorf("%s: invalid emotion %q", name, emotion)
		}
		if confidence < 0 || confidence > 100 {
			t.Errorf("%s: confidence %.1f out of range", name, confidence)
		}
		if tier == models.TierNone {
			t.Errorf("%s: expected a live tier to answer, got none", name)
		}
	}
}

func TestSimulatedClassifier(t *testing.T) {
	c := NewSimulatedClassifier()

	for i := 0; i < 200; i++ {
		emotion, confidence, err := c.Classify(nil)
		if err != nil {
			t.Fatalf("Simulated tier must not fail: %v", err)
		}
		if !emotion.Valid() {
			t.Fatalf("Invalid emotion %q", emotion)
		}
		if confidence < 70 || confidence > 85 {
			t.Fatalf("Confidence %.2f outside simulated range [70,85]", confidence)
		}
	}
}
