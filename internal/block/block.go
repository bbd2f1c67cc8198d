// Package block implements the video block: its editable fields and the
// student view that turns them into a render context.
package block

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/videofront/videofront-embed-go/internal/config"
	"github.com/videofront/videofront-embed-go/internal/i18n"
	"github.com/videofront/videofront-embed-go/internal/models"
	"github.com/videofront/videofront-embed-go/internal/service"
	"github.com/videofront/videofront-embed-go/pkg/logger"
)

// Runtime is what the hosting platform provides to a block.
type Runtime interface {
	// Settings returns the Videofront settings bucket of the deployment.
	Settings() models.Credentials
	// Render receives the assembled context. Markup and assets are the
	// runtime's business.
	Render(view models.ViewContext) error
}

// VideoResolver fetches video metadata.
type VideoResolver interface {
	Resolve(ctx context.Context, videoID string, creds models.Credentials) (*models.VideoMetadata, []models.Message)
}

// VideoBlock holds the fields a course author edits.
type VideoBlock struct {
	DisplayName   string `json:"display_name"`
	VideoID       string `json:"video_id"`
	AllowDownload bool   `json:"allow_download"`
}

// New returns a block carrying the configured defaults.
func New(cfg config.BlockConfig) VideoBlock {
	return VideoBlock{
		DisplayName:   cfg.DisplayName,
		VideoID:       cfg.VideoID,
		AllowDownload: cfg.AllowDownload,
	}
}

// IconClass is the CSS class used in the courseware sequence list.
func (b VideoBlock) IconClass() string {
	return "video"
}

// ViewOptions carry per-request data of a student view.
type ViewOptions struct {
	CourseID string
	Locale   language.Tag
}

// Viewer builds student views.
type Viewer struct {
	resolver   VideoResolver
	translator *i18n.Translator
}

// NewViewer creates a Viewer.
func NewViewer(resolver VideoResolver, translator *i18n.Translator) *Viewer {
	return &Viewer{
		resolver:   resolver,
		translator: translator,
	}
}

// Context assembles the render context of a block. It never fails: any
// problem reaching Videofront ends up in the context messages.
func (v *Viewer) Context(ctx context.Context, b VideoBlock, creds models.Credentials, opts ViewOptions) models.ViewContext {
	// Authors often paste ids with trailing spaces
	videoID := strings.TrimSpace(b.VideoID)

	video, messages := v.resolver.Resolve(ctx, videoID, creds)

	downloads := []models.DownloadEntry{}
	if b.AllowDownload {
		downloads = service.AssembleDownloads(video)
	}

	locale := opts.Locale
	if locale == language.Und {
		locale = i18n.DefaultLocale
	}

	return models.ViewContext{
		DisplayName:   b.DisplayName,
		Video:         video,
		Sources:       service.PlayerSources(video),
		Messages:      v.translator.Localize(locale, messages),
		Downloads:     downloads,
		AllowDownload: b.AllowDownload,
		Player: models.PlayerArgs{
			CourseID: opts.CourseID,
			VideoID:  videoID,
		},
		Locale: locale.String(),
	}
}

// StudentView renders a block through the runtime.
func (v *Viewer) StudentView(ctx context.Context, b VideoBlock, rt Runtime, opts ViewOptions) error {
	view := v.Context(ctx, b, rt.Settings(), opts)

	logger.L().Debug("Rendering video block",
		zap.String("videoId", view.Player.VideoID),
		zap.String("courseId", opts.CourseID),
		zap.Int("messages", len(view.Messages)),
		zap.Int("downloads", len(view.Downloads)),
	)

	if err := rt.Render(view); err != nil {
		return fmt.Errorf("render video block: %w", err)
	}
	return nil
}
