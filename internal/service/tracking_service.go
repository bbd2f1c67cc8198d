// Package service holds the business logic of the video block and of player
// event tracking.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/videofront/videofront-embed-go/internal/metrics"
	"github.com/videofront/videofront-embed-go/internal/models"
	"github.com/videofront/videofront-embed-go/internal/validation"
	"github.com/videofront/videofront-embed-go/pkg/logger"
)

// EventStore persists tracking events.
type EventStore interface {
	CreateTrackingEvent(ctx context.Context, event *models.TrackingEvent) error
	UpdateTrackingEventStatus(ctx context.Context, id uuid.UUID, status models.TrackingStatus, errorMsg *string) error
}

// EventPublisher forwards tracking events downstream.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *models.TrackingEvent) error
}

// TrackingService ingests player tracking events.
type TrackingService struct {
	store     EventStore
	publisher EventPublisher
	validator *validation.Validator
}

// NewTrackingService creates a new TrackingService instance.
func NewTrackingService(store EventStore, publisher EventPublisher, validator *validation.Validator) *TrackingService {
	return &TrackingService{
		store:     store,
		publisher: publisher,
		validator: validator,
	}
}

// Track validates, stores and publishes a player event.
func (ts *TrackingService) Track(ctx context.Context, payload *models.TrackingEventDTO, sourceIP, userAgent string) (*models.TrackingResponseDTO, error) {
	if err := ts.validator.ValidateEvent(payload); err != nil {
		logger.L().Warn("Tracking event validation failed",
			zap.Error(err),
			zap.String("eventType", payload.EventType),
			zap.String("videoId", payload.VideoID),
		)
		metrics.TrackingEvents.WithLabelValues(payload.EventType, "invalid").Inc()
		return nil, &ValidationError{Message: err.Error()}
	}

	eventID := uuid.New()
	event := &models.TrackingEvent{
		ID:        eventID,
		EventType: payload.EventType,
		CourseID:  payload.CourseID,
		VideoID:   payload.VideoID,
		Data:      ts.serializeData(payload.Data),
		SourceIP:  sourceIP,
		UserAgent: userAgent,
		Status:    models.TrackingStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := ts.store.CreateTrackingEvent(ctx, event); err != nil {
		logger.L().Error("Failed to persist tracking event",
			zap.Error(err),
			zap.String("eventId", eventID.String()),
		)
		metrics.TrackingEvents.WithLabelValues(payload.EventType, string(models.TrackingStatusFailed)).Inc()
		return nil, &ProcessingError{Message: "failed to persist event", Cause: err}
	}

	if err := ts.publisher.PublishEvent(ctx, event); err != nil {
		logger.L().Error("Failed to publish tracking event to RabbitMQ",
			zap.Error(err),
			zap.String("eventId", eventID.String()),
		)

		errMsg := fmt.Sprintf("Publishing failed: %v", err)
		if updateErr := ts.store.UpdateTrackingEventStatus(ctx, eventID, models.TrackingStatusFailed, &errMsg); updateErr != nil {
			logger.L().Error("Failed to update tracking event status",
				zap.Error(updateErr),
				zap.String("eventId", eventID.String()),
			)
		}

		metrics.TrackingEvents.WithLabelValues(payload.EventType, string(models.TrackingStatusFailed)).Inc()
		return nil, &ProcessingError{Message: "failed to publish event", Cause: err}
	}

	if err := ts.store.UpdateTrackingEventStatus(ctx, eventID, models.TrackingStatusCompleted, nil); err != nil {
		logger.L().Error("Failed to update tracking event status",
			zap.Error(err),
			zap.String("eventId", eventID.String()),
		)
	}

	metrics.TrackingEvents.WithLabelValues(payload.EventType, string(models.TrackingStatusCompleted)).Inc()
	logger.L().Debug("Tracking event processed",
		zap.String("eventId", eventID.String()),
		zap.String("eventType", payload.EventType),
		zap.String("videoId", payload.VideoID),
	)

	return &models.TrackingResponseDTO{
		EventID:    eventID,
		Status:     "ACCEPTED",
		ReceivedAt: event.CreatedAt,
	}, nil
}

func (ts *TrackingService) serializeData(data map[string]interface{}) string {
	if data == nil {
		return "{}"
	}
	raw, err := json.Marshal(data)
	if err != nil {
		logger.L().Error("Failed to serialize tracking data", zap.Error(err))
		return "{}"
	}
	return string(raw)
}

// ValidationError represents a tracking event validation error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ProcessingError represents an error that occurred while storing or
// publishing a tracking event.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ProcessingError struct {
	Message string
	Cause   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *ProcessingError) Unwrap() error { return e.Cause }
