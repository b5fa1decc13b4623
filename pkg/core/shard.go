package core

// TestMetrics maps a spec path to its recorded duration in milliseconds.
type TestMetrics map[string]int64

// SpecWithDuration is a discovered spec enriched with its expected duration.
type SpecWithDuration struct {
	*DiscoveredSpec
	// Duration in milliseconds, recorded or defaulted.
	Duration int64
}

// PackingItem is an indivisible unit of shard assignment, either a single
// standard spec or a capability group of specs that must stay together.
type PackingItem struct {
	// Capability is empty for standard specs.
	Capability string
	Specs      []string
	Duration   int64
}

// ShardBucket accumulates packing items for one shard while planning.
type ShardBucket struct {
	// Index is the bucket's position at creation time, used to keep
	// assignment deterministic when accumulated times tie.
	Index            int
	Specs            []string
	TestTime         int64
	Capabilities     map[string]struct{}
	HasStandardSpecs bool
}

// ShardAssignment is one shard of the final plan.
type ShardAssignment struct {
	Shard        int      `json:"shard"`
	Specs        []string `json:"specs"`
	TestTime     int64    `json:"testTime"`
	Capabilities []string `json:"capabilities"`
	FixtureCount int      `json:"fixtureCount"`
}

// ShardPlan is the output of the shard planning stage.
type ShardPlan struct {
	Shards []*ShardAssignment `json:"shards"`
	// TotalTestTime is the summed duration of every planned spec,
	// equal to the sum of shard test times.
	TotalTestTime int64 `json:"totalTestTime"`
}

// ShardPlanner splits discovered specs into duration-balanced shards.
type ShardPlanner interface {
	// Plan packs the specs into at most numShards shards. Specs sharing a
	// capability are grouped on the same shard unless the group exceeds the
	// configured max group duration.
	Plan(specs []*DiscoveredSpec, numShards int, metrics TestMetrics) *ShardPlan
}
