package models

import "time"

// Emotion is one of the fixed set of emotional states the pipeline reports.
type Emotion string

const (
	EmotionHappy    Emotion = "happy"
	EmotionSad      Emotion = "sad"
	EmotionAngry    Emotion = "angry"
	EmotionSurprise Emotion = "surprise"
	EmotionFear     Emotion = "fear"
	EmotionNeutral  Emotion = "neutral"
	EmotionDisgust  Emotion = "disgust"
)

// AllEmotions returns the full emotion set in a stable order.
func AllEmotions() []Emotion {
	return []Emotion{
		EmotionHappy,
		EmotionSad,
		EmotionAngry,
		EmotionSurprise,
		EmotionFear,
		EmotionNeutral,
		EmotionDisgust,
	}
}

// Valid reports whether e belongs to the enumerated emotion set.
func (e Emotion) Valid() bool {
	switch e {
	case EmotionHappy, EmotionSad, EmotionAngry, EmotionSurprise,
		EmotionFear, EmotionNeutral, EmotionDisgust:
		return true
	}
	return false
}

// Tier identifies which cascade tier produced a classification.
type Tier string

const (
	TierSpecialized Tier = "specialized" // joint face+emotion model
	TierGeneral     Tier = "general"     // general deep emotion classifier
	TierHeuristic   Tier = "heuristic"   // brightness/contrast fallback
	TierSimulated   Tier = "simulated"   // demo mode, no image signal
	TierNone        Tier = "none"        // no tier produced a result
)

// DetectionEvent is the per-frame output record of the pipeline.
// It is constructed once per processed frame and never mutated after
// being handed to the sinks.
type DetectionEvent struct {
	SessionID    string    `json:"session_id"`
	Timestamp    time.Time `json:"timestamp"`
	IsPresent    bool      `json:"is_present"`
	Emotion      Emotion   `json:"emotion,omitempty"`
	Confidence   float64   `json:"confidence"`
	DetectorTier Tier      `json:"detector_tier"`
	// Frame holds the JPEG snapshot when one is available. encoding/json
	// emits it as base64. Absent in degraded operation without video.
	Frame []byte `json:"frame,omitempty"`
	// Placeholder marks a synthesized frame so consumers can tell
	// "no one there" apart from "no camera".
	Placeholder bool `json:"placeholder,omitempty"`
}

// DetectionRecord is the persisted form of a DetectionEvent. Frame
// bytes are deliberately not stored.
type DetectionRecord struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	Timestamp    time.Time `json:"timestamp"`
	IsPresent    bool      `json:"is_present"`
	Emotion      string    `json:"emotion,omitempty"`
	Confidence   float64   `json:"confidence"`
	DetectorTier string    `json:"detector_tier"`
}

// RecordFromEvent strips the frame payload from an event for storage.
func RecordFromEvent(e *DetectionEvent) DetectionRecord {
	return DetectionRecord{
		SessionID:    e.SessionID,
		Timestamp:    e.Timestamp,
		IsPresent:    e.IsPresent,
		Emotion:      string(e.Emotion),
		Confidence:   e.Confidence,
		DetectorTier: string(e.DetectorTier),
	}
}
