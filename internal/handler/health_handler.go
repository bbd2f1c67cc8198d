// Package handler provides HTTP request handlers for the application.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BrokerStatus reports message broker connectivity.
type BrokerStatus interface {
	IsHealthy() bool
}

// HealthHandler handles health check endpoints. The database and broker are
// only checked when tracking is wired; a nil dependency is skipped.
type HealthHandler struct {
	db     Pinger
	broker BrokerStatus
}

// NewHealthHandler creates a new HealthHandler instance.
func NewHealthHandler(db Pinger, broker BrokerStatus) *HealthHandler {
	return &HealthHandler{
		db:     db,
		broker: broker,
	}
}

// LivenessProbe checks if the application is running.
func (h *HealthHandler) LivenessProbe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"time":   time.Now(),
	})
}

// ReadinessProbe checks if the application is ready to serve traffic.
func (h *HealthHandler) ReadinessProbe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := gin.H{"status": "UP"}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "DOWN",
				"database": "unhealthy",
				"error":    err.Error(),
				"time":     time.Now(),
			})
			return
		}
		body["database"] = "healthy"
	}

	if h.broker != nil {
		if !h.broker.IsHealthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "DOWN",
				"rabbitmq": "unhealthy",
				"time":     time.Now(),
			})
			return
		}
		body["rabbitmq"] = "healthy"
	}

	body["time"] = time.Now()
	c.JSON(http.StatusOK, body)
}
