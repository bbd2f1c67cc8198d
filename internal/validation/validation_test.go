package validation

import (
	"strings"
	"testing"

	"github.com/videofront/videofront-embed-go/internal/models"
)

func validEvent() *models.TrackingEventDTO {
	return &models.TrackingEventDTO{
		EventType: models.EventSeekVideo,
		CourseID:  "course-v1:Org+Course+Run",
		VideoID:   "b5c9f1d2-video_01",
		Data:      map[string]interface{}{"new_time": 42},
	}
}

func TestValidator_ValidateEvent(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*models.TrackingEventDTO)
		enabled bool
		wantErr bool
	}{
		{
			name:    "valid event",
			modify:  func(e *models.TrackingEventDTO) {},
			enabled: true,
		},
		{
			name:    "unknown event type",
			modify:  func(e *models.TrackingEventDTO) { e.EventType = "rewind_video" },
			enabled: true,
			wantErr: true,
		},
		{
			name:    "opaque video ID with punctuation",
			modify:  func(e *models.TrackingEventDTO) { e.VideoID = "vid.v2:abc" },
			enabled: true,
		},
		{
			name:    "video ID with invalid UTF-8",
			modify:  func(e *models.TrackingEventDTO) { e.VideoID = "abc\xff" },
			enabled: true,
			wantErr: true,
		},
		{
			name:    "empty video ID",
			modify:  func(e *models.TrackingEventDTO) { e.VideoID = "" },
			enabled: true,
			wantErr: true,
		},
		{
			name:    "course ID too long",
			modify:  func(e *models.TrackingEventDTO) { e.CourseID = strings.Repeat("c", 256) },
			enabled: true,
			wantErr: true,
		},
		{
			name: "data too large",
			modify: func(e *models.TrackingEventDTO) {
				e.Data = map[string]interface{}{"blob": strings.Repeat("x", 2048)}
			},
			enabled: true,
			wantErr: true,
		},
		{
			name:    "nil data",
			modify:  func(e *models.TrackingEventDTO) { e.Data = nil },
			enabled: true,
		},
		{
			name:    "validation disabled",
			modify:  func(e *models.TrackingEventDTO) { e.EventType = "whatever" },
			enabled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(1024, tt.enabled)
			event := validEvent()
			tt.modify(event)

			err := v.ValidateEvent(event)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidator_IsKnownEventType(t *testing.T) {
	v := New(1024, true)

	for _, event := range []string{
		models.EventLoadVideo, models.EventPlayVideo, models.EventPauseVideo,
		models.EventSeekVideo, models.EventStopVideo, models.EventSpeedChange,
		models.EventPlayerReady,
	} {
		if !v.IsKnownEventType(event) {
			t.Errorf("IsKnownEventType(%s) = false, want true", event)
		}
	}

	if v.IsKnownEventType("PLAY_VIDEO") {
		t.Error("IsKnownEventType is case sensitive")
	}
}

func TestValidator_IsValidVideoID(t *testing.T) {
	v := New(1024, true)

	tests := []struct {
		id   string
		want bool
	}{
		{"abc", true},
		{"A1_b-2", true},
		{"", false},
		{"has space", true},
		{"vid.v2:abc", true},
		{"abc/../etc", true},
		{"vidéo", true},
		{"\xff\xfe", false},
		{strings.Repeat("a", 255), true},
		{strings.Repeat("a", 256), false},
	}

	for _, tt := range tests {
		if got := v.IsValidVideoID(tt.id); got != tt.want {
			t.Errorf("IsValidVideoID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
