package services

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/config"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/logger"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services/detection"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services/vision"
)

// Sink receives one event per processed frame. Implementations must be
// non-blocking or bounded-time; a failing sink is logged and skipped,
// never allowed to stop the loop or the other sinks.
type Sink interface {
	Name() string
	OnEvent(event *models.DetectionEvent) error
}

// Monitor owns the monitoring sessions. Each active session runs one
// processing loop: pull a frame, locate a face, classify, smooth,
// assemble a DetectionEvent and hand it to the sinks.
type Monitor struct {
	cfg     *config.Config
	caps    models.Capabilities
	locator detection.FaceLocator // nil when face location is unavailable
	cascade *detection.Cascade
	filter  *detection.Filter
	sinks   []Sink
	logger  *logger.Logger

	// newSource is swappable so tests can inject fake sources.
	newSource func() (vision.FrameSource, error)

	mu       sync.Mutex
	sessions map[string]*session
}

// session is the per-loop state. The stability state has a single
// writer: the goroutine running this session's loop.
type session struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
	source vision.FrameSource
	state  *detection.State
}

func NewMonitor(cfg *config.Config, caps models.Capabilities, locator detection.FaceLocator, cascade *detection.Cascade, sinks []Sink, logger *logger.Logger) *Monitor {
	m := &Monitor{
		cfg:      cfg,
		caps:     caps,
		locator:  locator,
		cascade:  cascade,
		filter:   detection.NewFilter(cfg.DwellTime, cfg.MinConfidence),
		sinks:    sinks,
		logger:   logger,
		sessions: make(map[string]*session),
	}
	m.newSource = m.openSource
	return m
}

// openSource opens the camera when the capability probe found both a
// device and a face cascade, falling back to the simulated source so a
// session can always run. A camera without face location would stream
// frames that can never yield presence, so it counts as demo mode too,
// matching what the health endpoint reports.
func (m *Monitor) openSource() (vision.FrameSource, error) {
	if m.caps.Camera && m.caps.FaceLocator {
		source, err := vision.OpenCamera(m.cfg.CameraDevice, m.cfg.FrameWidth, m.cfg.FrameHeight, m.cfg.CaptureTimeout)
		if err == nil {
			return source, nil
		}
		m.logger.Warning("Camera open failed, using simulated source: %v", err)
	}
	return vision.NewSimulatedSource(m.cfg.SimulatedPresenceRatio), nil
}

// StartSession begins monitoring for the given session ID. Starting an
// already-running session is a no-op. Returns true if a new loop was
// started.
func (m *Monitor) StartSession(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, running := m.sessions[id]; running {
		return false
	}

	source, err := m.newSource()
	if err != nil {
		m.logger.Error("Failed to open frame source for session %s: %v", id, err)
		source = vision.NewSimulatedSource(m.cfg.SimulatedPresenceRatio)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		id:     id,
		cancel: cancel,
		done:   make(chan struct{}),
		source: source,
		state:  detection.NewState(m.cfg.HistoryCapacity),
	}
	m.sessions[id] = s

	go m.run(ctx, s)

	m.logger.Info("Monitoring session %s started", id)
	return true
}

// StopSession stops the session's loop and waits for it to exit. The
// device handle is released and the stability state discarded before
// this returns; no events are delivered afterwards. Stopping a session
// that is not running is a no-op. Returns true if a loop was stopped.
func (m *Monitor) StopSession(id string) bool {
	m.mu.Lock()
	s, running := m.sessions[id]
	if running {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !running {
		return false
	}

	s.cancel()
	<-s.done
	s.state.Reset()

	m.logger.Info("Monitoring session %s stopped", id)
	return true
}

// StopAll stops every active session.
func (m *Monitor) StopAll() {
	for _, id := range m.ActiveSessions() {
		m.StopSession(id)
	}
}

// ActiveSessions lists the IDs of running sessions.
func (m *Monitor) ActiveSessions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Capabilities returns the startup capability snapshot.
func (m *Monitor) Capabilities() models.Capabilities {
	return m.caps
}

// run is the per-session processing loop. The ticker caps the cadence
// independently of the camera frame rate: ticks that arrive while a
// frame is in flight are dropped, never queued.
func (m *Monitor) run(ctx context.Context, s *session) {
	defer close(s.done)
	defer func() {
		if err := s.source.Close(); err != nil {
			m.logger.Error("Failed to close frame source for session %s: %v", s.id, err)
		}
	}()

	ticker := time.NewTicker(m.cfg.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			event := m.processFrame(s)

			// A stop observed mid-iteration abandons the event.
			select {
			case <-ctx.Done():
				return
			default:
			}
			m.dispatch(event)
		}
	}
}

// processFrame runs one iteration of the pipeline. Every stage failure
// degrades the event instead of aborting: the result is always a
// well-formed DetectionEvent.
func (m *Monitor) processFrame(s *session) *models.DetectionEvent {
	event := &models.DetectionEvent{
		SessionID:    s.id,
		Timestamp:    time.Now(),
		DetectorTier: models.TierNone,
	}

	frame, err := s.source.Next()
	if err != nil {
		if !errors.Is(err, vision.ErrUnavailable) {
			m.logger.Error("Frame capture failed for session %s: %v", s.id, err)
		}
		return event
	}
	event.Frame = frame.JPEG
	event.Placeholder = frame.Placeholder

	if frame.Placeholder {
		// Demo mode: presence is simulated and classification falls
		// through to the simulated tier.
		event.IsPresent = frame.SimulatedPresence
		if event.IsPresent {
			m.classify(s, event, nil)
		}
		return event
	}

	var regions []detection.Region
	if m.locator != nil {
		regions, err = m.locator.Locate(frame)
		if err != nil {
			m.logger.Error("Face location failed for session %s: %v", s.id, err)
			regions = nil
		}
	}
	if len(regions) == 0 {
		return event
	}

	event.IsPresent = true
	primary, _ := detection.LargestRegion(regions)
	m.classify(s, event, primary.Crop)
	return event
}

// classify runs the cascade on the crop and the stability filter over
// its raw result, filling in the event's emotion fields. The event's
// confidence is the one paired with the reported emotion; the tier
// names the classifier that ran on this frame.
func (m *Monitor) classify(s *session, event *models.DetectionEvent, crop *image.Gray) {
	raw, confidence, tier := m.cascade.Classify(crop)
	event.Emotion = m.filter.Update(s.state, raw, confidence)
	event.Confidence = s.state.Confidence()
	event.DetectorTier = tier
}

// dispatch hands the event to every sink. Sink failures are isolated:
// logged, and the remaining sinks still receive the event.
func (m *Monitor) dispatch(event *models.DetectionEvent) {
	for _, sink := range m.sinks {
		if err := sink.OnEvent(event); err != nil {
			m.logger.Error("Sink %s rejected event: %v", sink.Name(), err)
		}
	}
}

// OpenFeed opens an independent frame source for the live video feed.
// The feed never shares a session's device handle; the caller owns the
// returned source and must close it.
func (m *Monitor) OpenFeed() (vision.FrameSource, error) {
	return m.newSource()
}

// DetectOnce performs a single on-demand capture outside any running
// session, records it, and returns the event. Used by the one-shot
// detection endpoint.
func (m *Monitor) DetectOnce(sessionID string) *models.DetectionEvent {
	source, err := m.newSource()
	if err != nil {
		m.logger.Error("Failed to open frame source for one-shot detection: %v", err)
		source = vision.NewSimulatedSource(m.cfg.SimulatedPresenceRatio)
	}
	defer source.Close()

	s := &session{
		id:     sessionID,
		source: source,
		state:  detection.NewState(m.cfg.HistoryCapacity),
	}
	event := m.processFrame(s)
	m.dispatch(event)
	return event
}
