package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/videofront/videofront-embed-go/internal/models"
)

func TestRoutingKeyFor(t *testing.T) {
	tests := []struct {
		eventType string
		want      string
	}{
		{models.EventPlayVideo, "player.event.play_video"},
		{models.EventSeekVideo, "player.event.seek_video"},
		{models.EventSpeedChange, "player.event.speed_change_video"},
		{models.EventPlayerReady, "player.event.video_player_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			assert.Equal(t, tt.want, routingKeyFor("player.event", tt.eventType))
		})
	}
}

func TestBindingKey(t *testing.T) {
	assert.Equal(t, "player.event.#", bindingKey("player.event"))
}
