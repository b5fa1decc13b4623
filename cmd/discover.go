package cmd

import (
	"context"

	"github.com/LambdaTest/axon/pkg/constants"
	"github.com/LambdaTest/axon/pkg/discovery"
	"github.com/LambdaTest/axon/pkg/loader"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

func discoverCommand() *cobra.Command {
	discoverCmd := cobra.Command{
		Use:   "discover",
		Short: "Discover the spec files that contain runnable tests",
		RunE:  runDiscover,
	}
	discoverCmd.Flags().StringP("output", "o", "", "file to write the discovery report to, stdout if empty")
	return &discoverCmd
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer initTracing(ctx, cfg, logger)()
	ctx, span := otel.Tracer(constants.ServiceName).Start(ctx, "discover")
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

	analyzer := discovery.New(cfg, logger)
	report := analyzer.Discover(units)
	logger.Infof("discovered %d spec files with runnable tests", len(report.Specs))

	output, _ := cmd.Flags().GetString("output")
	return writeArtifact(logger, output, report)
}
