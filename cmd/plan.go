package cmd

import (
	"context"

	"github.com/LambdaTest/axon/pkg/cimatrix"
	"github.com/LambdaTest/axon/pkg/constants"
	"github.com/LambdaTest/axon/pkg/discovery"
	"github.com/LambdaTest/axon/pkg/loader"
	"github.com/LambdaTest/axon/pkg/metrics"
	"github.com/LambdaTest/axon/pkg/requestutils"
	"github.com/LambdaTest/axon/pkg/shardplanner"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

func planCommand() *cobra.Command {
	planCmd := cobra.Command{
		Use:   "plan",
		Short: "Discover runnable specs and pack them into duration-balanced shards",
		RunE:  runPlan,
	}
	planCmd.Flags().IntP("shards", "n", 0, "number of shards to plan, overrides the configured count")
	planCmd.Flags().StringP("output", "o", "", "file to write the shard plan to, stdout if empty")
	planCmd.Flags().Bool("matrix", false, "also render the CI job matrix to the configured output file")
	return &planCmd
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer initTracing(ctx, cfg, logger)()
	ctx, span := otel.Tracer(constants.ServiceName).Start(ctx, "plan")
	defer span.End()

	projectLoader := loader.New(cfg, logger)
	units, err := projectLoader.Load(ctx, cfg.Discovery.RootDir, cfg.Discovery.SpecPatterns)
	if err != nil {
		logger.Errorf("failed to load spec files %v", err)
		return err
	}
	defer func() {
		for _, unit := range units {
			unit.Close()
		}
	}()
	report := discovery.New(cfg, logger).Discover(units)

	requests := requestutils.New(logger)
	testMetrics, err := metrics.New(cfg, requests, logger).Load(ctx)
	if err != nil {
		logger.Errorf("failed to load test metrics %v", err)
		return err
	}

	numShards := cfg.Shard.Count
	if n, flagErr := cmd.Flags().GetInt("shards"); flagErr == nil && n > 0 {
		numShards = n
	}
	plan := shardplanner.New(cfg, logger).Plan(report.Specs, numShards, testMetrics)
	logger.Infof("planned %d shards with a total test time of %dms", len(plan.Shards), plan.TotalTestTime)

	output, _ := cmd.Flags().GetString("output")
	if err := writeArtifact(logger, output, plan); err != nil {
		return err
	}

	if renderMatrix, flagErr := cmd.Flags().GetBool("matrix"); flagErr == nil && renderMatrix {
		renderer, err := cimatrix.New(cfg, logger)
		if err != nil {
			logger.Errorf("failed to create the matrix renderer %v", err)
			return err
		}
		return renderer.Write(cfg.CI.OutputFile, plan)
	}
	return nil
}
