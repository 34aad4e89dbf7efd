package inspect

import (
	"log/slog"

	"github.com/streamverify/av1inspect/internal/metrics"
)

// AnalyzeOptions configures a file analysis run.
type AnalyzeOptions struct {
	// Backend decodes the stream. When nil the header-level stats
	// backend is used, which derives no block-grid metrics.
	Backend Backend
	// EnableAnalysis registers the inspection callback on the backend.
	EnableAnalysis bool
	// Width and Height seed the inspection geometry when the container
	// does not declare dimensions.
	Width  int
	Height int
	// FrameInterval is the presentation-timestamp step in milliseconds.
	FrameInterval uint32

	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func defaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{EnableAnalysis: true}
}

func normalizeAnalyzeOptions(opts AnalyzeOptions) AnalyzeOptions {
	if opts.Backend == nil {
		opts.Backend = NewStatsBackend()
	}
	if opts.FrameInterval == 0 {
		opts.FrameInterval = 1
	}
	return opts
}
