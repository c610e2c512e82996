// Package metrics defines the Prometheus instrumentation for the rating flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rating flow metrics
var (
	// ComparisonsServedTotal counts image pairs handed to the rater
	ComparisonsServedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exo_comparisons_served_total",
			Help: "Total image pairs served for comparison",
		},
	)

	// ChoicesRecordedTotal counts rating decisions appended to the log
	ChoicesRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exo_choices_recorded_total",
			Help: "Total rating decisions recorded",
		},
	)

	// ArchivesCreatedTotal counts archive-and-reset events by trigger
	ArchivesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exo_archives_created_total",
			Help: "Total archives created, by trigger (exhaustion or forced)",
		},
		[]string{"trigger"},
	)

	// PoolSize tracks the image pool size at the last enumeration
	PoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "exo_image_pool_size",
			Help: "Image pool size at the last directory enumeration",
		},
	)
)

// Upload metrics
var (
	// UploadsTotal counts uploaded files by outcome
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exo_uploads_total",
			Help: "Total uploaded files by status (stored or rejected)",
		},
		[]string{"status"},
	)
)
