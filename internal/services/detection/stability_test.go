package detection

import (
	"testing"
	"time"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
)

func TestState_RingBufferCapacity(t *testing.T) {
	state := NewState(5)

	for i := 0; i < 100; i++ {
		state.push(models.EmotionHappy)
		if state.Len() > state.Capacity() {
			t.Fatalf("history grew past capacity: %d > %d", state.Len(), state.Capacity())
		}
	}

	if state.Len() != 5 {
		t.Errorf("Expected full history of 5, got %d", state.Len())
	}
}

func TestState_OldestEvictedFirst(t *testing.T) {
	state := NewState(3)

	state.push(models.EmotionHappy)
	state.push(models.EmotionSad)
	state.push(models.EmotionAngry)
	state.push(models.EmotionFear) // evicts happy

	expected := []models.Emotion{models.EmotionSad, models.EmotionAngry, models.EmotionFear}
	for i, want := range expected {
		if got := state.at(i); got != want {
			t.Errorf("at(%d) = %s, expected %s", i, got, want)
		}
	}
}

func TestState_MajorityTieBrokenByRecency(t *testing.T) {
	state := NewState(4)

	state.push(models.EmotionHappy)
	state.push(models.EmotionSad)
	state.push(models.EmotionHappy)
	state.push(models.EmotionSad)

	majority, count := state.majority()
	if majority != models.EmotionSad {
		t.Errorf("Expected tie broken by recency (sad), got %s", majority)
	}
	if count != 2 {
		t.Errorf("Expected count 2, got %d", count)
	}
}

func TestState_Reset(t *testing.T) {
	state := NewState(5)
	filter := NewFilter(0, 0)

	for i := 0; i < 5; i++ {
		filter.Update(state, models.EmotionHappy, 90)
	}
	if state.Current() != models.EmotionHappy {
		t.Fatalf("Expected happy before reset, got %s", state.Current())
	}

	state.Reset()

	if state.Current() != models.EmotionNeutral {
		t.Errorf("Expected neutral after reset, got %s", state.Current())
	}
	if state.Len() != 0 {
		t.Errorf("Expected empty history after reset, got %d", state.Len())
	}
}

// All frames agree: the reported emotion switches once the majority
// forms and stays put afterwards.
func TestFilter_ConsistentStreamStabilizes(t *testing.T) {
	state := NewState(5)
	filter := NewFilter(2*time.Second, 60)

	var reported []models.Emotion
	for i := 0; i < 10; i++ {
		reported = append(reported, filter.Update(state, models.EmotionHappy, 90))
	}

	// The first change needs a strict majority of the window.
	for i := 0; i < 2; i++ {
		if reported[i] != models.EmotionNeutral {
			t.Errorf("frame %d: expected neutral before majority forms, got %s", i, reported[i])
		}
	}
	for i := 2; i < 10; i++ {
		if reported[i] != models.EmotionHappy {
			t.Errorf("frame %d: expected happy, got %s", i, reported[i])
		}
	}
}

// Alternating raw classifications must not flip the reported value
// every frame: at most one change per dwell window.
func TestFilter_AlternatingStreamDoesNotFlicker(t *testing.T) {
	state := NewState(5)
	filter := NewFilter(2*time.Second, 60)

	now := time.Now()
	filter.now = func() time.Time { return now }

	stream := []models.Emotion{
		models.EmotionHappy, models.EmotionSad,
		models.EmotionHappy, models.EmotionSad,
		models.EmotionHappy, models.EmotionSad,
		models.EmotionHappy, models.EmotionSad,
		models.EmotionHappy, models.EmotionSad,
	}

	changes := 0
	prev := state.Current()
	for _, raw := range stream {
		got := filter.Update(state, raw, 80)
		if got != prev {
			changes++
			prev = got
		}
	}

	if changes > 1 {
		t.Errorf("Reported emotion changed %d times within one dwell window, expected at most 1", changes)
	}
	if prev != models.EmotionHappy {
		t.Errorf("Expected the stream to stabilize to the majority value happy, got %s", prev)
	}
}

func TestFilter_DwellTimeBlocksRapidChanges(t *testing.T) {
	state := NewState(3)
	filter := NewFilter(2*time.Second, 60)

	now := time.Now()
	filter.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		filter.Update(state, models.EmotionHappy, 90)
	}
	if state.Current() != models.EmotionHappy {
		t.Fatalf("Expected happy, got %s", state.Current())
	}

	// A new majority inside the dwell window is held back.
	for i := 0; i < 3; i++ {
		if got := filter.Update(state, models.EmotionSad, 90); got != models.EmotionHappy {
			t.Errorf("Expected happy to persist inside dwell window, got %s", got)
		}
	}

	// Once the dwell time elapses the pending majority is accepted.
	now = now.Add(3 * time.Second)
	if got := filter.Update(state, models.EmotionSad, 90); got != models.EmotionSad {
		t.Errorf("Expected sad after dwell elapsed, got %s", got)
	}
}

func TestFilter_LowConfidenceRejected(t *testing.T) {
	state := NewState(3)
	filter := NewFilter(0, 60)

	for i := 0; i < 5; i++ {
		if got := filter.Update(state, models.EmotionAngry, 40); got != models.EmotionNeutral {
			t.Errorf("Expected low-confidence change rejected, got %s", got)
		}
	}

	if got := filter.Update(state, models.EmotionAngry, 75); got != models.EmotionAngry {
		t.Errorf("Expected confident observation to be accepted, got %s", got)
	}
}

// The reported confidence always belongs to the reported emotion. A
// suppressed change must not pair the new observation's confidence with
// the held emotion.
func TestFilter_ConfidencePairsWithReportedEmotion(t *testing.T) {
	state := NewState(3)
	filter := NewFilter(time.Hour, 0)

	for i := 0; i < 3; i++ {
		filter.Update(state, models.EmotionHappy, 82)
	}
	if state.Current() != models.EmotionHappy || state.Confidence() != 82 {
		t.Fatalf("Expected (happy, 82), got (%s, %.1f)", state.Current(), state.Confidence())
	}

	// A confident sad stream inside the dwell window: happy is still
	// reported, and 95 must not be attached to it.
	for i := 0; i < 3; i++ {
		if got := filter.Update(state, models.EmotionSad, 95); got != models.EmotionHappy {
			t.Fatalf("Expected happy inside dwell window, got %s", got)
		}
	}
	if state.Confidence() != 82 {
		t.Errorf("Suppressed change leaked its confidence: got %.1f, expected 82", state.Confidence())
	}

	// A raw observation agreeing with the reported emotion refreshes it.
	state.Reset()
	filter.Update(state, models.EmotionNeutral, 40)
	filter.Update(state, models.EmotionNeutral, 55)
	if state.Confidence() != 55 {
		t.Errorf("Expected agreeing observation to refresh confidence, got %.1f", state.Confidence())
	}
}

func TestFilter_MinorityNeverAccepted(t *testing.T) {
	state := NewState(5)
	filter := NewFilter(0, 0)

	for i := 0; i < 5; i++ {
		filter.Update(state, models.EmotionNeutral, 90)
	}

	// Two sad frames in a window of five is not a majority.
	filter.Update(state, models.EmotionSad, 95)
	if got := filter.Update(state, models.EmotionSad, 95); got != models.EmotionNeutral {
		t.Errorf("Expected minority value rejected, got %s", got)
	}
}
