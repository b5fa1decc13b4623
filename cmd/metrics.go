package cmd

import (
	"context"

	"github.com/LambdaTest/axon/pkg/constants"
	"github.com/LambdaTest/axon/pkg/metrics"
	"github.com/LambdaTest/axon/pkg/requestutils"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

func fetchMetricsCommand() *cobra.Command {
	fetchCmd := cobra.Command{
		Use:   "fetch-metrics",
		Short: "Fetch fresh test metrics from the metrics endpoint",
		RunE:  runFetchMetrics,
	}
	return &fetchCmd
}

func runFetchMetrics(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer initTracing(ctx, cfg, logger)()
	ctx, span := otel.Tracer(constants.ServiceName).Start(ctx, "fetch-metrics")
	defer span.End()

	requests := requestutils.New(logger)
	if _, err := metrics.New(cfg, requests, logger).Fetch(ctx); err != nil {
		logger.Errorf("failed to fetch test metrics %v", err)
		return err
	}
	return nil
}
