package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus instruments for the inspection service.
type Metrics struct {
	// Session metrics
	SessionsCreated prometheus.Counter

	// Decode metrics
	UnitsDecoded  prometheus.Counter
	BytesDecoded  prometheus.Counter
	BurstBytes    prometheus.Gauge
	FramesDrained prometheus.Counter
	DecodeErrors  *prometheus.CounterVec

	// Analysis metrics
	AnalysesCompleted prometheus.Counter
	AnalysesFailed    prometheus.Counter
	AnalysisBytes     prometheus.Histogram
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		SessionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "av1inspect_sessions_created_total",
			Help: "Total number of decode sessions created",
		}),
		UnitsDecoded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "av1inspect_units_decoded_total",
			Help: "Total number of compressed units fed to decoders",
		}),
		BytesDecoded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "av1inspect_bytes_decoded_total",
			Help: "Total bytes of compressed input decoded",
		}),
		BurstBytes: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "av1inspect_burst_bytes",
			Help: "Largest single compressed unit decoded so far",
		}),
		FramesDrained: promauto.NewCounter(prometheus.CounterOpts{
			Name: "av1inspect_frames_drained_total",
			Help: "Total number of decoded pictures drained",
		}),
		DecodeErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "av1inspect_decode_errors_total",
				Help: "Total decode failures by error code",
			},
			[]string{"code"},
		),
		AnalysesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "av1inspect_analyses_completed_total",
			Help: "Total number of completed stream analyses",
		}),
		AnalysesFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "av1inspect_analyses_failed_total",
			Help: "Total number of failed stream analyses",
		}),
		AnalysisBytes: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "av1inspect_analysis_bytes",
			Help:    "Size of analyzed streams in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10), // 1KiB to ~256MiB
		}),
	}
}
