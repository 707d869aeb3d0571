package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MediaProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vibecheck",
		Name:      "media_processed_total",
		Help:      "Total number of media items run through the perception pipeline",
	}, []string{"result"})

	SignalsCollected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vibecheck",
		Name:      "signals_collected_total",
		Help:      "Total number of signal collector runs",
	}, []string{"signal", "result"})

	SignalDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vibecheck",
		Name:      "signal_duration_seconds",
		Help:      "Duration of individual signal collectors",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
	}, []string{"signal"})

	SocialGraphRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vibecheck",
		Name:      "social_graph_runs_total",
		Help:      "Total number of social graph computations by outcome",
	}, []string{"outcome"})

	InsightRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vibecheck",
		Name:      "insight_requests_total",
		Help:      "Total calls to the text-generation service",
	}, []string{"task", "result"})

	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vibecheck",
		Name:      "queue_depth",
		Help:      "Number of pending analysis tasks in queue",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vibecheck",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vibecheck",
		Name:      "ws_connections",
		Help:      "Number of active WebSocket connections",
	})
)
