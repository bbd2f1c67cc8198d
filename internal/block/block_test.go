package block

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/videofront/videofront-embed-go/internal/config"
	"github.com/videofront/videofront-embed-go/internal/i18n"
	"github.com/videofront/videofront-embed-go/internal/models"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, videoID string, creds models.Credentials) (*models.VideoMetadata, []models.Message) {
	args := m.Called(ctx, videoID, creds)
	var video *models.VideoMetadata
	if v := args.Get(0); v != nil {
		video = v.(*models.VideoMetadata)
	}
	var msgs []models.Message
	if v := args.Get(1); v != nil {
		msgs = v.([]models.Message)
	}
	return video, msgs
}

type recordingRuntime struct {
	creds    models.Credentials
	rendered []models.ViewContext
	err      error
}

func (r *recordingRuntime) Settings() models.Credentials { return r.creds }

func (r *recordingRuntime) Render(view models.ViewContext) error {
	r.rendered = append(r.rendered, view)
	return r.err
}

var creds = models.Credentials{Host: "https://vf", Token: "tok"}

func newViewer(t *testing.T, r VideoResolver) *Viewer {
	t.Helper()
	tr, err := i18n.NewTranslator()
	require.NoError(t, err)
	return NewViewer(r, tr)
}

func readyVideo() *models.VideoMetadata {
	return &models.VideoMetadata{
		ID:         "abc",
		Processing: models.Processing{Status: models.ProcessingStatusReady, Progress: 100},
		Formats: []models.RenditionSource{
			{URL: "ld.mp4", Name: "LD"},
			{URL: "hd.mp4", Name: "HD"},
		},
	}
}

func TestNew(t *testing.T) {
	b := New(config.BlockConfig{DisplayName: "New video", AllowDownload: true})

	assert.Equal(t, "New video", b.DisplayName)
	assert.Empty(t, b.VideoID)
	assert.True(t, b.AllowDownload)
	assert.Equal(t, "video", b.IconClass())
}

func TestViewer_StudentView(t *testing.T) {
	r := &mockResolver{}
	r.On("Resolve", mock.Anything, "abc", creds).Return(readyVideo(), nil)
	rt := &recordingRuntime{creds: creds}

	b := VideoBlock{DisplayName: "Lecture 1", VideoID: "  abc  ", AllowDownload: true}
	err := newViewer(t, r).StudentView(context.Background(), b, rt, ViewOptions{CourseID: "course-v1:X+Y+Z"})
	require.NoError(t, err)

	require.Len(t, rt.rendered, 1)
	view := rt.rendered[0]
	assert.Equal(t, "Lecture 1", view.DisplayName)
	assert.Equal(t, "abc", view.Video.ID)
	assert.Empty(t, view.Messages)
	assert.True(t, view.AllowDownload)
	assert.Equal(t, []models.DownloadEntry{
		{URL: "hd.mp4", Label: "High (720p)"},
		{URL: "ld.mp4", Label: "Mobile (320p)"},
	}, view.Downloads)
	require.Len(t, view.Sources, 2)
	assert.Equal(t, "ld.mp4", view.Sources[0].URL)
	assert.Equal(t, models.PlayerArgs{CourseID: "course-v1:X+Y+Z", VideoID: "abc"}, view.Player)
	assert.Equal(t, "en", view.Locale)
	r.AssertExpectations(t)
}

func TestViewer_DownloadsDisabled(t *testing.T) {
	r := &mockResolver{}
	r.On("Resolve", mock.Anything, "abc", creds).Return(readyVideo(), nil)

	view := newViewer(t, r).Context(context.Background(),
		VideoBlock{VideoID: "abc", AllowDownload: false}, creds, ViewOptions{})

	assert.NotNil(t, view.Downloads)
	assert.Empty(t, view.Downloads)
	assert.False(t, view.AllowDownload)
	assert.Len(t, view.Sources, 2)
}

func TestViewer_LocalizesMessages(t *testing.T) {
	r := &mockResolver{}
	r.On("Resolve", mock.Anything, "", creds).Return(nil, []models.Message{
		models.NewMessage(models.SeverityWarning, models.MessageInvalidVideoID),
	})

	view := newViewer(t, r).Context(context.Background(),
		VideoBlock{VideoID: "   ", AllowDownload: true}, creds, ViewOptions{Locale: language.French})

	assert.Nil(t, view.Video)
	assert.Empty(t, view.Downloads)
	assert.Empty(t, view.Sources)
	require.Len(t, view.Messages, 1)
	assert.Equal(t, models.SeverityWarning, view.Messages[0].Level)
	assert.Equal(t, "Vous devez définir un identifiant de vidéo Videofront valide.", view.Messages[0].Content)
	assert.Equal(t, "fr", view.Locale)
}

func TestViewer_RenderError(t *testing.T) {
	r := &mockResolver{}
	r.On("Resolve", mock.Anything, "abc", creds).Return(readyVideo(), nil)
	rt := &recordingRuntime{creds: creds, err: errors.New("template exploded")}

	err := newViewer(t, r).StudentView(context.Background(), VideoBlock{VideoID: "abc"}, rt, ViewOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "template exploded")
}
