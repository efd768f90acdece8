package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
)

// EventSink adapts the hub to the monitor's sink interface: every
// processed frame is pushed to all live viewers as JSON.
type EventSink struct {
	hub *HubService
}

func NewEventSink(hub *HubService) *EventSink {
	return &EventSink{hub: hub}
}

func (s *EventSink) Name() string {
	return "websocket"
}

// OnEvent broadcasts the event. Delivery is best-effort and bounded:
// a slow hub drops the message instead of blocking the processor.
func (s *EventSink) OnEvent(event *models.DetectionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	s.hub.Broadcast(payload)
	return nil
}
