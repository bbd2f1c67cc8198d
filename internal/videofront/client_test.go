package videofront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	c := NewClient(Config{BaseURL: "https://vf.example.com/", Token: "tok"})

	assert.Equal(t, "https://vf.example.com", c.baseURL)
	assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
	assert.Equal(t, "https://vf.example.com/api/v1/videos/abc/", c.VideoURL("abc"))
}

func TestClient_VideoURLEscapesID(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://vf"})

	assert.Equal(t, "http://vf/api/v1/videos/a%2Fb/", c.VideoURL("a/b"))
}

func TestClient_FetchVideoMetadata(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Token: "secret"})
	resp, err := c.FetchVideoMetadata(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/videos/abc/", gotPath)
	assert.Equal(t, "Token secret", gotAuth)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":"abc"}`, string(resp.Body))
}

func TestClient_FetchVideoMetadata_ErrorStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Token: "bad"})
	resp, err := c.FetchVideoMetadata(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "nope")
}

func TestClient_FetchVideoMetadata_DoesNotRetry(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Token: "tok"})
	resp, err := c.FetchVideoMetadata(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestClient_FetchVideoMetadata_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(Config{BaseURL: srv.URL, Token: "tok", Timeout: 50 * time.Millisecond})
	resp, err := c.FetchVideoMetadata(context.Background(), "abc")

	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestClient_FetchVideoMetadata_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: addr, Token: "tok"})
	resp, err := c.FetchVideoMetadata(context.Background(), "abc")

	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestClient_FetchVideoMetadata_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(Config{BaseURL: srv.URL, Token: "tok"})
	_, err := c.FetchVideoMetadata(ctx, "abc")

	assert.ErrorIs(t, err, context.Canceled)
}
