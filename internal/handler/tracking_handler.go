package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/videofront/videofront-embed-go/internal/models"
	"github.com/videofront/videofront-embed-go/internal/service"
	"github.com/videofront/videofront-embed-go/pkg/logger"
)

// EventTracker ingests player tracking events.
type EventTracker interface {
	Track(ctx context.Context, payload *models.TrackingEventDTO, sourceIP, userAgent string) (*models.TrackingResponseDTO, error)
}

// TrackingHandler handles player tracking requests.
type TrackingHandler struct {
	tracker EventTracker
}

// NewTrackingHandler creates a new TrackingHandler instance.
func NewTrackingHandler(tracker EventTracker) *TrackingHandler {
	return &TrackingHandler{
		tracker: tracker,
	}
}

// HandleEvent records a single event emitted by the video player.
func (h *TrackingHandler) HandleEvent(c *gin.Context) {
	var payload models.TrackingEventDTO

	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.L().Warn("Invalid request payload",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:    http.StatusBadRequest,
			Error:     "Bad Request",
			Message:   "Invalid request payload: " + err.Error(),
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	sourceIP := h.getClientIP(c)
	userAgent := c.GetHeader("User-Agent")

	logger.L().Debug("Received tracking event",
		zap.String("eventType", payload.EventType),
		zap.String("courseId", payload.CourseID),
		zap.String("videoId", payload.VideoID),
		zap.String("sourceIp", sourceIP),
	)

	response, err := h.tracker.Track(c.Request.Context(), &payload, sourceIP, userAgent)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, response)
}

func (h *TrackingHandler) getClientIP(c *gin.Context) string {
	// Check X-Forwarded-For header
	xff := c.GetHeader("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Check X-Real-IP header
	xri := c.GetHeader("X-Real-IP")
	if xri != "" {
		return xri
	}

	return c.ClientIP()
}

func (h *TrackingHandler) handleError(c *gin.Context, err error) {
	switch err.(type) {
	case *service.ValidationError:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:    http.StatusBadRequest,
			Error:     "Bad Request",
			Message:   err.Error(),
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	case *service.ProcessingError:
		logger.L().Error("Processing error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:    http.StatusInternalServerError,
			Error:     "Internal Server Error",
			Message:   "Failed to process tracking event",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	default:
		logger.L().Error("Unexpected error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:    http.StatusInternalServerError,
			Error:     "Internal Server Error",
			Message:   "An unexpected error occurred",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	}
}
