package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devevent_events_created_total",
		Help: "Total number of event documents persisted.",
	})

	EventCreateFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devevent_event_create_failures_total",
		Help: "Failed create attempts, labelled by stage (connect, upload, persist).",
	}, []string{"stage"})

	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devevent_image_uploads_total",
		Help: "Image uploads to the hosting service, labelled by status.",
	}, []string{"status"})

	ImageUploadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "devevent_image_upload_duration_seconds",
		Help:    "Latency of image uploads to the hosting service.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	OrphanCleanups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devevent_orphan_image_cleanups_total",
		Help: "Compensating deletes of images whose event failed to persist, labelled by status.",
	}, []string{"status"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devevent_http_requests_total",
		Help: "HTTP requests served, labelled by method, route and status code.",
	}, []string{"method", "route", "code"})

	FeaturedEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "devevent_featured_events",
		Help: "Number of events currently on the landing page list.",
	})
)
