package constants

import "time"

const (
	// ServiceName OpenTelemetry service name
	ServiceName = "axon"
	// BinaryVersion axon binary version
	BinaryVersion = "0.3.1"
	// DefaultSpecPattern default glob used to locate spec files inside the project root.
	DefaultSpecPattern = "tests/**/*.spec.ts"
	// DefaultCapabilityPrefix title tag prefix that declares an external capability.
	DefaultCapabilityPrefix = "@capability:"
	// DefaultShardCount default number of parallel shards to plan.
	DefaultShardCount = 1
	// DefaultSpecDuration fallback duration in milliseconds for specs with no recorded metrics.
	DefaultSpecDuration int64 = 60000
	// DefaultMaxGroupDuration duration in milliseconds above which a capability group is split.
	DefaultMaxGroupDuration int64 = 300000
	// DefaultFixtureStartupCost estimated cost in milliseconds of provisioning one fixture on a shard.
	DefaultFixtureStartupCost int64 = 30000
	// DefaultParseConcurrency max number of spec files parsed in parallel.
	DefaultParseConcurrency = 8
	// DefaultMetricsFileName default test metrics file name.
	DefaultMetricsFileName = "metrics.json"
	// DefaultMatrixFileName default CI job matrix file name.
	DefaultMatrixFileName = "axon-matrix.json"
	// DefaultAPITimeout default timeout for outbound API requests.
	DefaultAPITimeout = 45 * time.Second
	// DefaultMetricsFetchTimeout is the default per attempt timeout for the metrics fetch
	DefaultMetricsFetchTimeout int64 = 6e10 // 60 seconds, value is int64 nanoseconds due to issue in viper.
	// MetricsFetchMaxRetries max attempts while fetching test metrics.
	MetricsFetchMaxRetries uint = 3
	// MetricsFetchRetryDelay base delay between metrics fetch retries.
	MetricsFetchRetryDelay = 500 * time.Millisecond
	// MetricsFetchRetryJitter max random jitter added between metrics fetch retries.
	MetricsFetchRetryJitter = 300 * time.Millisecond
	// ArtifactFileMode file mode for report and matrix artifacts.
	ArtifactFileMode = 0644
)

// Recognized spec call spellings.
const (
	// TestCall declares a runnable test.
	TestCall = "test"
	// FocusTestCall declares a focused test, still runnable.
	FocusTestCall = "test.only"
	// GroupCall declares a titled group of tests.
	GroupCall = "test.describe"
	// SkipTestCall marks a test or group as skipped.
	SkipTestCall = "test.skip"
	// FixmeTestCall marks a test or group as broken, never run.
	FixmeTestCall = "test.fixme"
)

// All possible env values
const (
	Dev   = "dev"
	Prod  = "prod"
	Stage = "stage"
)

// CI providers the matrix renderer can target.
const (
	// GitHubProvider renders a GitHub Actions strategy matrix.
	GitHubProvider = "github"
)
