package service

import (
	"fmt"
	"net/http"

	"github.com/videofront/videofront-embed-go/internal/models"
)

// Resolution failures. Every one of them is turned into a diagnostic
// message by the resolver; none escapes to the host.

// ConfigurationError reports a missing video id, host or token.
type ConfigurationError struct {
	Field string
}

// Fields reported by ConfigurationError.
const (
	FieldVideoID = "video_id"
	FieldHost    = "host"
	FieldToken   = "token"
)

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("undefined %s", e.Field)
}

// TransportError means no HTTP response was obtained.
type TransportError struct {
	VideoID string
	Cause   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not reach Videofront for video %s: %v", e.VideoID, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// AuthError is a 403 from the API.
type AuthError struct {
	VideoID string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication refused for video %s", e.VideoID)
}

// NotFoundError is a 404 from the API.
type NotFoundError struct {
	VideoID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("video %s not found", e.VideoID)
}

// UnknownServiceError covers every other error status and malformed
// success bodies.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type UnknownServiceError struct {
	StatusCode int
	Body       string
	Cause      error
}

func (e *UnknownServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unexpected Videofront response (status %d): %v", e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("unexpected Videofront response (status %d)", e.StatusCode)
}

func (e *UnknownServiceError) Unwrap() error { return e.Cause }

// classifyStatus maps an error status to its resolution failure.
func classifyStatus(videoID string, code int, body []byte) error {
	switch code {
	case http.StatusForbidden:
		return &AuthError{VideoID: videoID}
	case http.StatusNotFound:
		return &NotFoundError{VideoID: videoID}
	default:
		return &UnknownServiceError{StatusCode: code, Body: string(body)}
	}
}

// messageFor converts a resolution failure into the message shown to the viewer.
func messageFor(err error) models.Message {
	switch e := err.(type) {
	case *ConfigurationError:
		switch e.Field {
		case FieldHost:
			return models.NewMessage(models.SeverityWarning, models.MessageUndefinedHost)
		case FieldToken:
			return models.NewMessage(models.SeverityWarning, models.MessageUndefinedToken)
		default:
			return models.NewMessage(models.SeverityWarning, models.MessageInvalidVideoID)
		}
	case *TransportError:
		return models.NewMessage(models.SeverityError, models.MessageUnreachable)
	case *AuthError:
		return models.NewMessage(models.SeverityError, models.MessageAuthentication)
	case *NotFoundError:
		return models.NewMessage(models.SeverityWarning, models.MessageIncorrectVideoID)
	default:
		return models.NewMessage(models.SeverityError, models.MessageUnknownError)
	}
}

// outcomeLabel names a failure for metrics.
func outcomeLabel(err error) string {
	switch e := err.(type) {
	case nil:
		return "ok"
	case *ConfigurationError:
		return "missing_" + e.Field
	case *TransportError:
		return "transport_error"
	case *AuthError:
		return "auth_error"
	case *NotFoundError:
		return "not_found"
	default:
		return "unknown_error"
	}
}
