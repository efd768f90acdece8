package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEmotionValid(t *testing.T) {
	for _, e := range AllEmotions() {
		if !e.Valid() {
			t.Errorf("Expected %s to be valid", e)
		}
	}

	for _, e := range []Emotion{"", "ecstatic", "HAPPY", "none"} {
		if e.Valid() {
			t.Errorf("Expected %q to be invalid", e)
		}
	}
}

func TestRecordFromEvent_StripsFrame(t *testing.T) {
	event := &DetectionEvent{
		SessionID:    "EMP001",
		Timestamp:    time.Now(),
		IsPresent:    true,
		Emotion:      EmotionHappy,
		Confidence:   82.5,
		DetectorTier: TierGeneral,
		Frame:        []byte{0xff, 0xd8, 0xff},
	}

	rec := RecordFromEvent(event)

	if rec.SessionID != event.SessionID || !rec.IsPresent {
		t.Errorf("Identity fields not carried: %+v", rec)
	}
	if rec.Emotion != "happy" || rec.DetectorTier != "general" {
		t.Errorf("Classification fields not carried: %+v", rec)
	}
	if rec.Confidence != 82.5 {
		t.Errorf("Expected confidence 82.5, got %.2f", rec.Confidence)
	}
}

func TestDetectionEvent_JSONOmitsEmptyEmotion(t *testing.T) {
	event := &DetectionEvent{
		SessionID:    "EMP001",
		Timestamp:    time.Now(),
		IsPresent:    false,
		DetectorTier: TierNone,
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if _, ok := fields["emotion"]; ok {
		t.Error("Absence events must not serialize an emotion field")
	}
	if _, ok := fields["frame"]; ok {
		t.Error("Events without a snapshot must not serialize a frame field")
	}
	if fields["detector_tier"] != "none" {
		t.Errorf("Expected detector_tier none, got %v", fields["detector_tier"])
	}
}

func TestCapabilitiesMode(t *testing.T) {
	tests := []struct {
		name     string
		caps     Capabilities
		mode     string
		degraded bool
	}{
		{"everything available", Capabilities{FaceLocator: true, SpecializedModel: true, GeneralModel: true, Camera: true}, "full", false},
		{"general model only", Capabilities{FaceLocator: true, GeneralModel: true, Camera: true}, "general", false},
		{"no models", Capabilities{FaceLocator: true, Camera: true}, "heuristic", true},
		{"no camera", Capabilities{FaceLocator: true, SpecializedModel: true}, "demo", true},
		{"no cascade file", Capabilities{Camera: true, SpecializedModel: true}, "demo", true},
		{"nothing", Capabilities{}, "demo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.caps.Mode(); got != tt.mode {
				t.Errorf("Expected mode %s, got %s", tt.mode, got)
			}
			if got := tt.caps.Degraded(); got != tt.degraded {
				t.Errorf("Expected degraded=%v, got %v", tt.degraded, got)
			}
		})
	}
}
