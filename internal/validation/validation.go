// Package validation checks player tracking events before they are stored.
package validation

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/videofront/videofront-embed-go/internal/models"
)

const maxIDLength = 255

var knownEvents = map[string]bool{
	models.EventLoadVideo:   true,
	models.EventPlayVideo:   true,
	models.EventPauseVideo:  true,
	models.EventSeekVideo:   true,
	models.EventStopVideo:   true,
	models.EventSpeedChange: true,
	models.EventPlayerReady: true,
}

type Validator struct {
	maxPayloadSize    int64
	validationEnabled bool
}

func New(maxPayloadSize int64, enabled bool) *Validator {
	return &Validator{
		maxPayloadSize:    maxPayloadSize,
		validationEnabled: enabled,
	}
}

func (v *Validator) ValidateEvent(event *models.TrackingEventDTO) error {
	if !v.validationEnabled {
		return nil
	}

	if !v.IsKnownEventType(event.EventType) {
		return fmt.Errorf("unknown event type: %s", event.EventType)
	}

	if !v.IsValidVideoID(event.VideoID) {
		return fmt.Errorf("invalid video ID format: %s", event.VideoID)
	}

	if len(event.CourseID) > maxIDLength {
		return fmt.Errorf("course ID exceeds %d characters", maxIDLength)
	}

	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("event data is not serializable: %w", err)
	}
	if int64(len(data)) > v.maxPayloadSize {
		return fmt.Errorf("event data exceeds maximum size of %d bytes", v.maxPayloadSize)
	}

	return nil
}

// IsValidVideoID accepts any non-empty UTF-8 id of at most 255 bytes.
// Videofront ids are opaque; the player reports whatever the view rendered.
func (v *Validator) IsValidVideoID(videoID string) bool {
	return videoID != "" && len(videoID) <= maxIDLength && utf8.ValidString(videoID)
}

func (v *Validator) IsKnownEventType(eventType string) bool {
	return knownEvents[eventType]
}
