// Package metrics exposes the Prometheus collectors of the component.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "videofront"

var (
	// ResolveOutcomes counts resolver results by outcome kind.
	ResolveOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolve_outcomes_total",
		Help:      "Video metadata resolutions by outcome.",
	}, []string{"outcome"})

	// FetchDuration tracks Videofront API latency by HTTP status class.
	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Latency of Videofront API calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	// TrackingEvents counts player tracking events by type and delivery status.
	TrackingEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_events_total",
		Help:      "Player tracking events by type and delivery status.",
	}, []string{"event_type", "status"})
)

// StatusClass buckets an HTTP status code ("2xx", "4xx", ...). Zero means
// no response was received.
func StatusClass(code int) string {
	if code <= 0 {
		return "error"
	}
	return strconv.Itoa(code/100) + "xx"
}
