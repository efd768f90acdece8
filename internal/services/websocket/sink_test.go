package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/logger"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
)

func TestEventSink_BroadcastsJSON(t *testing.T) {
	hub := NewHubService(logger.Discard())
	sink := NewEventSink(hub)

	event := &models.DetectionEvent{
		SessionID:    "EMP001",
		Timestamp:    time.Now(),
		IsPresent:    true,
		Emotion:      models.EmotionHappy,
		Confidence:   82,
		DetectorTier: models.TierGeneral,
	}
	if err := sink.OnEvent(event); err != nil {
		t.Fatalf("OnEvent failed: %v", err)
	}

	select {
	case payload := <-hub.broadcast:
		var decoded models.DetectionEvent
		if err := json.Unmarshal(payload, &decoded); err != nil {
			t.Fatalf("Broadcast payload is not valid JSON: %v", err)
		}
		if decoded.SessionID != "EMP001" || decoded.Emotion != models.EmotionHappy {
			t.Errorf("Payload round-trip mismatch: %+v", decoded)
		}
	default:
		t.Fatal("Expected the event queued for broadcast")
	}
}

func TestHub_RegisterAfterShutdownDoesNotBlock(t *testing.T) {
	hub := NewHubService(logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not exit on cancellation")
	}

	// A viewer connecting during shutdown must not pin its handler.
	returned := make(chan struct{})
	go func() {
		conn := &websocket.Conn{}
		hub.Register(conn)
		hub.Unregister(conn)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Register blocked after the hub stopped")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("Expected no clients after shutdown, got %d", hub.ClientCount())
	}
}

// The sink must never block the processing loop, even with no hub
// consumer running.
func TestEventSink_DropsWhenQueueFull(t *testing.T) {
	hub := NewHubService(logger.Discard())
	sink := NewEventSink(hub)

	event := &models.DetectionEvent{SessionID: "EMP001", Timestamp: time.Now()}

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer*2; i++ {
			sink.OnEvent(event)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Sink blocked on a full broadcast queue")
	}
}
