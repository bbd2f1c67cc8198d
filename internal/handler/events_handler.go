package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/videofront/videofront-embed-go/internal/models"
	"github.com/videofront/videofront-embed-go/internal/repository"
	"github.com/videofront/videofront-embed-go/pkg/logger"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// EventReader looks up stored tracking events.
type EventReader interface {
	GetTrackingEventByID(ctx context.Context, id uuid.UUID) (*models.TrackingEvent, error)
	ListTrackingEventsByVideoID(ctx context.Context, videoID string, limit int) ([]models.TrackingEvent, error)
}

// EventsHandler exposes stored tracking events.
type EventsHandler struct {
	reader EventReader
}

// NewEventsHandler creates a new EventsHandler instance.
func NewEventsHandler(reader EventReader) *EventsHandler {
	return &EventsHandler{reader: reader}
}

// List handles GET /api/v1/events?video_id=...&limit=...
func (h *EventsHandler) List(c *gin.Context) {
	videoID := c.Query("video_id")
	if videoID == "" {
		badRequest(c, "video_id query parameter is required")
		return
	}

	limit := defaultEventLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxEventLimit {
			badRequest(c, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	events, err := h.reader.ListTrackingEventsByVideoID(c.Request.Context(), videoID, limit)
	if err != nil {
		logger.L().Error("Failed to list tracking events",
			zap.Error(err),
			zap.String("videoId", videoID),
		)
		internalError(c, "Failed to list tracking events")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// Get handles GET /api/v1/events/:id
func (h *EventsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid event id")
		return
	}

	event, err := h.reader.GetTrackingEventByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Status:    http.StatusNotFound,
			Error:     "Not Found",
			Message:   "tracking event not found",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}
	if err != nil {
		logger.L().Error("Failed to get tracking event",
			zap.Error(err),
			zap.String("eventId", id.String()),
		)
		internalError(c, "Failed to get tracking event")
		return
	}

	c.JSON(http.StatusOK, event)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:    http.StatusBadRequest,
		Error:     "Bad Request",
		Message:   msg,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}

func internalError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Status:    http.StatusInternalServerError,
		Error:     "Internal Server Error",
		Message:   msg,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}
