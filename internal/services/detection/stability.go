package detection

import (
	"time"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
)

// State is the per-session mutable state of the stability filter. It is
// owned by a single session loop and must not be shared across loops.
//
// The raw classification history is a fixed-capacity ring buffer:
// inserts are O(1) and the oldest entry is evicted first.
type State struct {
	history    []models.Emotion
	next       int // write index
	size       int
	current    models.Emotion
	confidence float64 // confidence paired with current
	lastChange time.Time
}

// NewState creates filter state with the given history capacity. The
// reported emotion starts at neutral.
func NewState(capacity int) *State {
	if capacity < 1 {
		capacity = 1
	}
	return &State{
		history: make([]models.Emotion, capacity),
		current: models.EmotionNeutral,
	}
}

// Current returns the last reported emotion.
func (s *State) Current() models.Emotion {
	return s.current
}

// Confidence returns the confidence paired with the reported emotion,
// not with the latest raw observation. A suppressed change never
// borrows the confidence that scored a different emotion.
func (s *State) Confidence() float64 {
	return s.confidence
}

// Len returns the number of raw classifications currently held.
func (s *State) Len() int {
	return s.size
}

// Capacity returns the fixed history capacity.
func (s *State) Capacity() int {
	return len(s.history)
}

// Reset clears the history and returns the state to its initial value.
// Called only on session stop; a brief presence loss keeps the state so
// the history does not have to re-accumulate.
func (s *State) Reset() {
	s.next = 0
	s.size = 0
	s.current = models.EmotionNeutral
	s.confidence = 0
	s.lastChange = time.Time{}
}

func (s *State) push(e models.Emotion) {
	s.history[s.next] = e
	s.next = (s.next + 1) % len(s.history)
	if s.size < len(s.history) {
		s.size++
	}
}

// majority returns the most frequent emotion in the history and its
// count. Ties are broken by the most recent occurrence.
func (s *State) majority() (models.Emotion, int) {
	counts := make(map[models.Emotion]int, s.size)
	lastSeen := make(map[models.Emotion]int, s.size)

	for i := 0; i < s.size; i++ {
		e := s.at(i)
		counts[e]++
		lastSeen[e] = i
	}

	var best models.Emotion
	bestCount := -1
	for e, n := range counts {
		if n > bestCount || (n == bestCount && lastSeen[e] > lastSeen[best]) {
			best = e
			bestCount = n
		}
	}
	return best, bestCount
}

// at returns the i-th entry in insertion order, oldest first.
func (s *State) at(i int) models.Emotion {
	if s.size < len(s.history) {
		return s.history[i]
	}
	return s.history[(s.next+i)%len(s.history)]
}

// Filter smooths the raw per-frame classification stream. It is a
// low-pass filter over a categorical signal with a dwell-time guard:
// the reported emotion follows the history majority, changes at most
// once per dwell window, and only when the triggering observation is
// confident enough.
type Filter struct {
	dwell         time.Duration
	minConfidence float64
	now           func() time.Time
}

// NewFilter creates a stability filter with the given dwell time and
// minimum acceptance confidence.
func NewFilter(dwell time.Duration, minConfidence float64) *Filter {
	return &Filter{
		dwell:         dwell,
		minConfidence: minConfidence,
		now:           time.Now,
	}
}

// Update pushes a raw classification into the state and returns the
// emotion to report. A change is accepted only when the candidate holds
// a strict majority of the full history window, the dwell time since
// the last change has elapsed, and the current raw confidence clears
// the acceptance threshold.
func (f *Filter) Update(state *State, raw models.Emotion, confidence float64) models.Emotion {
	state.push(raw)

	candidate, count := state.majority()
	if candidate == state.current {
		if raw == state.current {
			state.confidence = confidence
		}
		return state.current
	}

	required := state.Capacity()/2 + 1
	if count < required {
		return state.current
	}
	if !state.lastChange.IsZero() && f.now().Sub(state.lastChange) < f.dwell {
		return state.current
	}
	if confidence < f.minConfidence {
		return state.current
	}

	state.current = candidate
	state.confidence = confidence
	state.lastChange = f.now()
	return state.current
}
