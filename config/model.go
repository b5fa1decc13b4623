package config

import (
	"time"

	"github.com/LambdaTest/axon/pkg/lumber"
)

type (
	// ConfigWrapper is a wrapper for the config
	ConfigWrapper struct {
		Config `json:"data"`
	}

	// Config the application's configuration
	Config struct {
		LogFile   string
		LogConfig lumber.LoggingConfig
		Env       string
		Verbose   bool
		Discovery DiscoveryConfig
		Shard     ShardConfig
		Metrics   MetricsConfig
		CI        CIConfig `json:"ci"`
		Tracing   TracingConfig
	}

	// DiscoveryConfig configures how spec files are located and analyzed.
	DiscoveryConfig struct {
		// RootDir is the project root the spec patterns are resolved against.
		RootDir string `validate:"required"`
		// SpecPatterns are the glob patterns selecting spec files under RootDir.
		SpecPatterns []string `validate:"required,min=1"`
		// SkipTags lists title tags that force a test to be skipped, e.g. @wip.
		SkipTags []string
		// CapabilityPrefix is the title tag prefix declaring a capability.
		CapabilityPrefix string `validate:"required"`
		// Concurrency caps the number of spec files parsed in parallel.
		Concurrency int `validate:"gte=1"`
	}

	// ShardConfig configures the shard planner.
	ShardConfig struct {
		// Count is the number of shards to plan.
		Count int `validate:"gte=1"`
		// DefaultSpecDuration is the fallback duration in milliseconds for
		// specs missing from the metrics.
		DefaultSpecDuration int64 `validate:"gt=0"`
		// MaxGroupDuration is the duration in milliseconds above which a
		// capability group is split into subgroups.
		MaxGroupDuration int64 `validate:"gt=0"`
	}

	// MetricsConfig configures the test metrics source.
	MetricsConfig struct {
		// FilePath is the local metrics file location.
		FilePath string `validate:"required"`
		// Endpoint is the remote metrics API address, optional.
		Endpoint string `validate:"omitempty,url"`
		// Token is the bearer token for the metrics API.
		Token string
		// FetchTimeout is the per attempt timeout for the metrics fetch.
		FetchTimeout time.Duration
	}

	// CIConfig configures the job matrix rendering.
	CIConfig struct {
		// Provider is the CI system the matrix targets.
		Provider string `validate:"required"`
		// OutputFile is where the job matrix artifact is written.
		OutputFile string
		// FixtureStartupCost is the estimated cost in milliseconds of
		// provisioning one fixture on a shard.
		FixtureStartupCost int64 `validate:"gte=0"`
		// CapabilityImages maps capability names to service container images.
		CapabilityImages map[string]string `validate:"omitempty,dive,required"`
	}

	// TracingConfig provides opentelemetry configurations
	TracingConfig struct {
		// OtelEndpoint for storing host name for otel collector
		OtelEndpoint string
	}
)
