package cimatrix

import (
	"encoding/json"
	"os"

	"github.com/LambdaTest/axon/config"
	"github.com/LambdaTest/axon/pkg/constants"
	"github.com/LambdaTest/axon/pkg/core"
	errs "github.com/LambdaTest/axon/pkg/errors"
	"github.com/LambdaTest/axon/pkg/lumber"
	"github.com/LambdaTest/axon/pkg/utils"
	"github.com/pkg/errors"
)

type gitHubRenderer struct {
	cfg    *config.Config
	logger lumber.Logger
}

func newGitHubRenderer(cfg *config.Config, logger lumber.Logger) core.MatrixRenderer {
	return &gitHubRenderer{cfg: cfg, logger: logger}
}

// Render builds a GitHub Actions strategy matrix, one include entry per
// shard. Every shard capability must have a service image configured.
func (g *gitHubRenderer) Render(plan *core.ShardPlan) (*core.JobMatrix, error) {
	if len(plan.Shards) == 0 {
		return nil, errs.ErrEmptyShardPlan
	}
	jobs := make([]*core.MatrixJob, 0, len(plan.Shards))
	for _, shard := range plan.Shards {
		services := make([]string, 0, len(shard.Capabilities))
		for _, capability := range shard.Capabilities {
			image, ok := g.cfg.CI.CapabilityImages[capability]
			if !ok {
				return nil, errs.MissingCapabilityImageErr(capability)
			}
			services = append(services, image)
		}
		preview := shard.Specs[:utils.Min(3, len(shard.Specs))]
		g.logger.Debugf("shard %d runs %d specs, starting with %v", shard.Shard, len(shard.Specs), preview)
		jobs = append(jobs, &core.MatrixJob{
			Shard:         shard.Shard,
			Specs:         shard.Specs,
			Services:      services,
			FixtureCount:  shard.FixtureCount,
			EstimatedTime: shard.TestTime + int64(shard.FixtureCount)*g.cfg.CI.FixtureStartupCost,
		})
	}
	return &core.JobMatrix{Include: jobs}, nil
}

// Write renders the plan and writes the matrix file consumed by the workflow.
func (g *gitHubRenderer) Write(path string, plan *core.ShardPlan) error {
	matrix, err := g.Render(plan)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(matrix, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, constants.ArtifactFileMode); err != nil {
		return errors.Wrapf(err, "failed to write job matrix to %s", path)
	}
	g.logger.Infof("wrote job matrix for %d shards to %s", len(matrix.Include), path)
	return nil
}
