package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/videofront/videofront-embed-go/internal/block"
	"github.com/videofront/videofront-embed-go/internal/i18n"
	"github.com/videofront/videofront-embed-go/internal/models"
	"github.com/videofront/videofront-embed-go/pkg/logger"
)

// ViewHandler serves the student view of a video block, standing in for the
// course platform runtime.
type ViewHandler struct {
	viewer     *block.Viewer
	translator *i18n.Translator
	settings   models.Credentials
	defaults   block.VideoBlock
}

// NewViewHandler creates a new ViewHandler instance.
func NewViewHandler(viewer *block.Viewer, translator *i18n.Translator, settings models.Credentials, defaults block.VideoBlock) *ViewHandler {
	return &ViewHandler{
		viewer:     viewer,
		translator: translator,
		settings:   settings,
		defaults:   defaults,
	}
}

// httpRuntime renders block contexts as JSON responses.
type httpRuntime struct {
	c        *gin.Context
	settings models.Credentials
}

func (rt *httpRuntime) Settings() models.Credentials {
	return rt.settings
}

func (rt *httpRuntime) Render(view models.ViewContext) error {
	rt.c.JSON(http.StatusOK, view)
	return nil
}

// StudentView renders the block identified by the :id path parameter.
// Problems with Videofront are reported as messages in a 200 response.
func (h *ViewHandler) StudentView(c *gin.Context) {
	b := h.defaults
	b.VideoID = c.Param("id")

	if name, ok := c.GetQuery("display_name"); ok {
		b.DisplayName = name
	}
	if raw, ok := c.GetQuery("allow_download"); ok {
		allow, err := strconv.ParseBool(raw)
		if err != nil {
			logger.L().Warn("Ignoring invalid allow_download value",
				zap.String("value", raw),
			)
		} else {
			b.AllowDownload = allow
		}
	}

	opts := block.ViewOptions{
		CourseID: c.Query("course_id"),
		Locale:   h.translator.Match(c.GetHeader("Accept-Language")),
	}

	rt := &httpRuntime{c: c, settings: h.settings}
	if err := h.viewer.StudentView(c.Request.Context(), b, rt, opts); err != nil {
		logger.L().Error("Failed to render student view",
			zap.Error(err),
			zap.String("videoId", b.VideoID),
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:    http.StatusInternalServerError,
			Error:     "Internal Server Error",
			Message:   "Failed to render video",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	}
}
