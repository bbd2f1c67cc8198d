// Package videofront talks to the Videofront video API.
package videofront

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/videofront/videofront-embed-go/internal/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 4 << 20
)

// RawResponse is an undecoded API answer.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// Fetcher retrieves the raw metadata record of a video. An error means no
// HTTP response was obtained (DNS, refused connection, timeout,
// cancellation); HTTP error statuses are returned as responses.
type Fetcher interface {
	FetchVideoMetadata(ctx context.Context, videoID string) (*RawResponse, error)
}

// Config holds the configuration for the Videofront client.
type Config struct {
	BaseURL string        // e.g. "https://videofront.example.com"
	Token   string        // API token, sent as "Authorization: Token <token>"
	Timeout time.Duration // Request timeout (default: 10 seconds)
}

// Client is a Fetcher backed by net/http. It never retries.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new Videofront client.
func NewClient(config Config) *Client {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		token:   config.Token,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// VideoURL returns the API endpoint of a video.
func (c *Client) VideoURL(videoID string) string {
	return fmt.Sprintf("%s/api/v1/videos/%s/", c.baseURL, url.PathEscape(videoID))
}

// FetchVideoMetadata performs GET {host}/api/v1/videos/{id}/.
func (c *Client) FetchVideoMetadata(ctx context.Context, videoID string) (*RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.VideoURL(videoID), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.FetchDuration.WithLabelValues(metrics.StatusClass(0)).Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("send request to Videofront: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	metrics.FetchDuration.WithLabelValues(metrics.StatusClass(resp.StatusCode)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &RawResponse{StatusCode: resp.StatusCode, Body: body}, nil
}
