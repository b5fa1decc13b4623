package core

import "context"

// MetricsSource provides per spec test durations.
type MetricsSource interface {
	// Load reads metrics from the local metrics file. A missing file is not
	// an error, every spec then falls back to the default duration.
	Load(ctx context.Context) (TestMetrics, error)
	// Fetch downloads fresh metrics from the configured endpoint and
	// persists them to the local metrics file.
	Fetch(ctx context.Context) (TestMetrics, error)
}
