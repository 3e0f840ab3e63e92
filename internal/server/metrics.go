package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bardec_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bardec_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Decode metrics
	decodeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bardec_decode_requests_total",
			Help: "Total number of decode requests",
		},
		[]string{"symbology", "status"}, // status: success, no_pattern, bad_image, budget_exceeded
	)

	decodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bardec_decode_duration_seconds",
			Help:    "Decode pipeline duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	// Rate limiting metrics
	rateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bardec_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
	)

	// File upload metrics
	uploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bardec_upload_size_bytes",
			Help:    "Size of uploaded images in bytes",
			Buckets: []float64{1024, 10 * 1024, 100 * 1024, 1024 * 1024, 10 * 1024 * 1024, 50 * 1024 * 1024},
		},
	)

	// WebSocket metrics
	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bardec_websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	websocketMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bardec_websocket_messages_total",
			Help: "Total number of WebSocket messages",
		},
		[]string{"direction"}, // direction: sent, received
	)
)
