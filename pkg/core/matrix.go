package core

// MatrixJob is one CI job rendered from a shard assignment.
type MatrixJob struct {
	Shard int      `json:"shard"`
	Specs []string `json:"specs"`
	// Services lists the container images backing the shard's capabilities.
	Services     []string `json:"services"`
	FixtureCount int      `json:"fixtureCount"`
	// EstimatedTime is the shard test time plus fixture startup cost, in milliseconds.
	EstimatedTime int64 `json:"estimatedTime"`
}

// JobMatrix is the strategy matrix consumed by the CI workflow.
type JobMatrix struct {
	Include []*MatrixJob `json:"include"`
}

// MatrixRenderer converts a shard plan into a CI job matrix.
type MatrixRenderer interface {
	// Render builds the job matrix for the plan.
	Render(plan *ShardPlan) (*JobMatrix, error)
	// Write renders the plan and writes the matrix to path as JSON.
	Write(path string, plan *ShardPlan) error
}
