package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/videofront/videofront-embed-go/internal/metrics"
	"github.com/videofront/videofront-embed-go/internal/models"
	"github.com/videofront/videofront-embed-go/internal/videofront"
	"github.com/videofront/videofront-embed-go/pkg/logger"
)

// FetcherFactory builds a Fetcher bound to a set of credentials.
type FetcherFactory func(creds models.Credentials) videofront.Fetcher

// Resolver fetches video metadata and reports problems as diagnostic
// messages. It keeps no state between calls.
type Resolver struct {
	newFetcher FetcherFactory
}

// NewResolver creates a Resolver talking to Videofront over HTTP with the
// given request timeout.
func NewResolver(timeout time.Duration) *Resolver {
	return NewResolverWithFetcher(func(creds models.Credentials) videofront.Fetcher {
		return videofront.NewClient(videofront.Config{
			BaseURL: creds.Host,
			Token:   creds.Token,
			Timeout: timeout,
		})
	})
}

// NewResolverWithFetcher creates a Resolver using a custom Fetcher factory.
func NewResolverWithFetcher(factory FetcherFactory) *Resolver {
	return &Resolver{newFetcher: factory}
}

// Resolve returns the metadata of a video together with the messages to show
// the viewer. On failure the metadata is nil and exactly one message is
// returned. On success a message is added for videos that are still being
// processed or whose processing failed.
func (r *Resolver) Resolve(ctx context.Context, videoID string, creds models.Credentials) (*models.VideoMetadata, []models.Message) {
	video, err := r.fetch(ctx, strings.TrimSpace(videoID), creds)
	metrics.ResolveOutcomes.WithLabelValues(outcomeLabel(err)).Inc()
	if err != nil {
		return nil, []models.Message{messageFor(err)}
	}

	var messages []models.Message
	switch video.Processing.Status {
	case models.ProcessingStatusProcessing:
		messages = append(messages, models.NewMessage(models.SeverityInfo, models.MessageProcessing, video.Processing.Progress))
	case models.ProcessingStatusFailed:
		messages = append(messages, models.NewMessage(models.SeverityWarning, models.MessageProcessingFailed))
	}

	return video, messages
}

func (r *Resolver) fetch(ctx context.Context, videoID string, creds models.Credentials) (*models.VideoMetadata, error) {
	if videoID == "" {
		return nil, &ConfigurationError{Field: FieldVideoID}
	}
	if creds.Host == "" {
		return nil, &ConfigurationError{Field: FieldHost}
	}
	if creds.Token == "" {
		return nil, &ConfigurationError{Field: FieldToken}
	}

	// TODO: cache responses behind a Fetcher decorator; every view costs one
	// call to Videofront.
	resp, err := r.newFetcher(creds).FetchVideoMetadata(ctx, videoID)
	if err != nil {
		logger.L().Error("Could not connect to Videofront",
			zap.Error(err),
			zap.String("host", creds.Host),
			zap.String("videoId", videoID),
		)
		return nil, &TransportError{VideoID: videoID, Cause: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		err := classifyStatus(videoID, resp.StatusCode, resp.Body)
		var unknown *UnknownServiceError
		if errors.As(err, &unknown) {
			logger.L().Error("Received Videofront error",
				zap.Int("status", resp.StatusCode),
				zap.String("body", string(resp.Body)),
				zap.String("host", creds.Host),
				zap.String("videoId", videoID),
			)
		}
		return nil, err
	}

	video, err := decodeVideo(resp.Body)
	if err != nil {
		logger.L().Error("Malformed Videofront response",
			zap.Error(err),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(resp.Body)),
			zap.String("videoId", videoID),
		)
		return nil, &UnknownServiceError{StatusCode: resp.StatusCode, Body: string(resp.Body), Cause: err}
	}

	return video, nil
}

// videoPayload is the wire format of a Videofront video record.
type videoPayload struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Processing *struct {
		Status   string  `json:"status"`
		Progress float64 `json:"progress"`
	} `json:"processing"`
	Formats []models.RenditionSource `json:"formats"`
}

func decodeVideo(body []byte) (*models.VideoMetadata, error) {
	var payload videoPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode video: %w", err)
	}
	if payload.Processing == nil {
		return nil, errors.New("decode video: missing processing section")
	}

	progress := payload.Processing.Progress
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	formats := payload.Formats
	if formats == nil {
		formats = []models.RenditionSource{}
	}

	return &models.VideoMetadata{
		ID:    payload.ID,
		Title: payload.Title,
		Processing: models.Processing{
			Status:   models.ParseProcessingStatus(payload.Processing.Status),
			Progress: progress,
		},
		Formats: formats,
	}, nil
}
