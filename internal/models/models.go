// Package models contains the data models and DTOs of the Videofront embed component.
package models

import (
	"time"

	"github.com/google/uuid"
)

// TrackingStatus is the delivery state of a player tracking event.
type TrackingStatus string

// TrackingStatus constants.
const (
	TrackingStatusPending   TrackingStatus = "PENDING"
	TrackingStatusCompleted TrackingStatus = "COMPLETED"
	TrackingStatusFailed    TrackingStatus = "FAILED"
)

// Player event names emitted by the video player.
const (
	EventLoadVideo   = "load_video"
	EventPlayVideo   = "play_video"
	EventPauseVideo  = "pause_video"
	EventSeekVideo   = "seek_video"
	EventStopVideo   = "stop_video"
	EventSpeedChange = "speed_change_video"
	EventPlayerReady = "video_player_ready"
)

// TrackingEvent is a stored player event.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type TrackingEvent struct {
	ID           uuid.UUID      `json:"id"`
	EventType    string         `json:"event_type"`
	CourseID     string         `json:"course_id"`
	VideoID      string         `json:"video_id"`
	Data         string         `json:"data"`
	SourceIP     string         `json:"source_ip"`
	UserAgent    string         `json:"user_agent"`
	Status       TrackingStatus `json:"status"`
	ErrorMessage *string        `json:"error_message"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	PublishedAt  *time.Time     `json:"published_at"`
}

// TrackingEventDTO is the body posted by the player.
type TrackingEventDTO struct {
	EventType string                 `json:"event_type" binding:"required,max=50"`
	CourseID  string                 `json:"course_id"`
	VideoID   string                 `json:"video_id" binding:"required"`
	Data      map[string]interface{} `json:"data"`
}

// TrackingResponseDTO acknowledges a tracking event.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type TrackingResponseDTO struct {
	EventID    uuid.UUID `json:"eventId"`
	ReceivedAt time.Time `json:"receivedAt"`
	Status     string    `json:"status"`
}

// ErrorResponse represents an error response.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}
