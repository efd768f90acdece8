package detection

import (
	"errors"
	"fmt"
	"image"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/config"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/logger"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
)

// ErrNoResult is returned by a classifier tier that ran but produced no
// usable classification for this crop. The cascade falls through to the
// next tier.
var ErrNoResult = errors.New("no usable classification")

// Classifier is one tier in the emotion classification fallback chain.
// Confidence is on the [0,100] scale.
type Classifier interface {
	Tier() models.Tier
	Classify(crop *image.Gray) (models.Emotion, float64, error)
}

// Cascade tries an ordered list of classifier tiers and returns the
// first usable result. The tier list is decided once at startup from
// the capability probe; unavailable tiers are never in the list.
type Cascade struct {
	tiers  []Classifier
	logger *logger.Logger
}

// NewCascade builds the tier list for the given capabilities. Model
// tiers that fail to load are skipped with a single warning; the
// heuristic and simulated tiers are always present so the cascade can
// always answer.
func NewCascade(caps models.Capabilities, cfg *config.Config, logger *logger.Logger) *Cascade {
	var tiers []Classifier

	if caps.SpecializedModel {
		c, err := NewSpecializedClassifier(cfg.SpecializedModelPath)
		if err != nil {
			logger.Warning("Specialized emotion model unavailable: %v", err)
		} else {
			tiers = append(tiers, c)
		}
	}
	if caps.GeneralModel {
		c, err := NewGeneralClassifier(cfg.GeneralModelPath)
		if err != nil {
			logger.Warning("General emotion model unavailable: %v", err)
		} else {
			tiers = append(tiers, c)
		}
	}
	tiers = append(tiers, NewHeuristicClassifier(), NewSimulatedClassifier())

	return &Cascade{tiers: tiers, logger: logger}
}

// NewCascadeWithTiers builds a cascade from an explicit tier list.
func NewCascadeWithTiers(logger *logger.Logger, tiers ...Classifier) *Cascade {
	return &Cascade{tiers: tiers, logger: logger}
}

// Classify runs the tiers in order and returns the first usable result
// with its confidence clamped to [0,100]. It never fails: if every tier
// declines, the result is (neutral, 0, none). A panicking tier is
// caught here and treated as a declined tier.
func (c *Cascade) Classify(crop *image.Gray) (models.Emotion, float64, models.Tier) {
	for _, tier := range c.tiers {
		emotion, confidence, err := safeClassify(tier, crop)
		if err != nil {
			c.logger.Debug("Tier %s declined: %v", tier.Tier(), err)
			continue
		}
		if !emotion.Valid() {
			c.logger.Warning("Tier %s returned unknown emotion %q", tier.Tier(), emotion)
			continue
		}
		return emotion, clampConfidence(confidence), tier.Tier()
	}
	return models.EmotionNeutral, 0, models.TierNone
}

func safeClassify(tier Classifier, crop *image.Gray) (emotion models.Emotion, confidence float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tier %s panicked: %v", tier.Tier(), r)
		}
	}()
	return tier.Classify(crop)
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
