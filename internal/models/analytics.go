package models

import "time"

// DetectionFilter contains filtering options for querying detection records.
type DetectionFilter struct {
	SessionID string
	After     time.Time
	Before    time.Time
	Limit     int
}

// Analytics aggregates detection history over a time window.
type Analytics struct {
	TotalDetections     int            `json:"total_detections"`
	PresencePercentage  float64        `json:"presence_percentage"`
	EmotionDistribution map[string]int `json:"emotion_distribution"`
	WorkingHours        float64        `json:"working_hours"`
}
