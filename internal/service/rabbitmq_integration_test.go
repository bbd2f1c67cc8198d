//go:build integration
// +build integration

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/videofront/videofront-embed-go/internal/config"
	"github.com/videofront/videofront-embed-go/internal/models"
	"github.com/videofront/videofront-embed-go/pkg/logger"
)

var (
	loggerInitOnce sync.Once
	loggerInitErr  error
)

func initTestLogger() error {
	loggerInitOnce.Do(func() {
		loggerInitErr = logger.Init("error", "")
	})
	return loggerInitErr
}

func setupTestRabbitMQ(t *testing.T) (*config.RabbitMQConfig, func()) {
	// Initialize logger for tests
	if err := initTestLogger(); err != nil {
		t.Fatalf("Failed to initialize test logger: %v", err)
	}

	ctx := context.Background()

	rabbitmqContainer, err := rabbitmq.Run(ctx,
		"rabbitmq:3.13-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start rabbitmq container: %v", err)
	}

	host, err := rabbitmqContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get host: %v", err)
	}

	port, err := rabbitmqContainer.MappedPort(ctx, "5672/tcp")
	if err != nil {
		t.Fatalf("Failed to get port: %v", err)
	}

	cfg := &config.RabbitMQConfig{
		Host:       host,
		Port:       port.Int(),
		User:       "guest",
		Password:   "guest",
		Exchange:   "videofront.tracking",
		Queue:      "videofront.tracking.events",
		RoutingKey: "player.event",
	}

	cleanup := func() {
		if err := rabbitmqContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return cfg, cleanup
}

func TestNewMessagePublisher(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	cfg, cleanup := setupTestRabbitMQ(t)
	defer cleanup()

	// Allow some time for RabbitMQ to be fully ready
	time.Sleep(2 * time.Second)

	mp, err := NewMessagePublisher(cfg)
	if err != nil {
		t.Fatalf("NewMessagePublisher() error = %v", err)
	}
	defer mp.Close()

	if mp == nil {
		t.Fatal("NewMessagePublisher() returned nil")
	}
}

func TestMessagePublisher_PublishEvent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	cfg, cleanup := setupTestRabbitMQ(t)
	defer cleanup()

	time.Sleep(2 * time.Second)

	mp, err := NewMessagePublisher(cfg)
	if err != nil {
		t.Fatalf("NewMessagePublisher() error = %v", err)
	}
	defer mp.Close()

	event := testEvent()
	require.NoError(t, mp.PublishEvent(context.Background(), event))

	// Consume the message back to check what downstream consumers receive
	conn, err := amqp.Dial(fmt.Sprintf("amqp://guest:guest@%s:%d/", cfg.Host, cfg.Port))
	require.NoError(t, err)
	defer conn.Close()
	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	msg, ok, err := ch.Get(cfg.Queue, true)
	require.NoError(t, err)
	require.True(t, ok, "no message in queue")
	assert.Equal(t, event.ID.String(), msg.MessageId)
	assert.Equal(t, models.EventPlayVideo, msg.Type)
	assert.Equal(t, "player.event.play_video", msg.RoutingKey)

	var got models.TrackingEvent
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, "abc", got.VideoID)
}

func TestMessagePublisher_IsHealthy(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	cfg, cleanup := setupTestRabbitMQ(t)
	defer cleanup()

	time.Sleep(2 * time.Second)

	mp, err := NewMessagePublisher(cfg)
	if err != nil {
		t.Fatalf("NewMessagePublisher() error = %v", err)
	}
	defer mp.Close()

	if !mp.IsHealthy() {
		t.Error("IsHealthy() = false, want true")
	}

	// Close and check unhealthy
	mp.Close()
	if mp.IsHealthy() {
		t.Error("IsHealthy() after Close() = true, want false")
	}
}

func TestMessagePublisher_PublishAfterConnectionLoss(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	cfg, cleanup := setupTestRabbitMQ(t)
	defer cleanup()

	time.Sleep(2 * time.Second)

	mp, err := NewMessagePublisher(cfg)
	if err != nil {
		t.Fatalf("NewMessagePublisher() error = %v", err)
	}
	defer mp.Close()

	// Close the connection
	if mp.conn != nil {
		mp.conn.Close()
	}

	// Try to publish (should fail since connection is closed and no auto-reconnect)
	err = mp.PublishEvent(context.Background(), testEvent())
	assert.Error(t, err)
	assert.False(t, mp.IsHealthy())
}

func testEvent() *models.TrackingEvent {
	return &models.TrackingEvent{
		ID:        uuid.New(),
		EventType: models.EventPlayVideo,
		CourseID:  "course-v1:Org+Course+Run",
		VideoID:   "abc",
		Data:      `{"currentTime": 3}`,
		SourceIP:  "127.0.0.1",
		UserAgent: "test-agent",
		Status:    models.TrackingStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
