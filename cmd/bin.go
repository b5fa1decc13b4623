package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/LambdaTest/axon/config"
	"github.com/LambdaTest/axon/pkg/constants"
	errs "github.com/LambdaTest/axon/pkg/errors"
	"github.com/LambdaTest/axon/pkg/lumber"
	"github.com/LambdaTest/axon/pkg/opentelemetry"
	"github.com/LambdaTest/axon/pkg/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RootCommand will setup and return the root command
func RootCommand() *cobra.Command {
	rootCmd := cobra.Command{
		Use:     "axon",
		Long:    `axon prepares a test suite for CI by discovering the spec files that will actually run and packing them into duration-balanced shards for parallel execution.`,
		Version: constants.BinaryVersion,
	}

	// define flags used for this command
	AttachCLIFlags(&rootCmd)

	rootCmd.AddCommand(discoverCommand())
	rootCmd.AddCommand(planCommand())
	rootCmd.AddCommand(fetchMetricsCommand())

	return &rootCmd
}

// setup loads the config and instantiates the logger shared by all subcommands.
func setup(cmd *cobra.Command) (*config.Config, lumber.Logger, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		fmt.Printf("Failed to load config: %v", err)
		return nil, nil, err
	}
	if verbose, flagErr := cmd.Flags().GetBool("verbose"); flagErr == nil && verbose {
		cfg.Verbose = true
	}
	if logFile, flagErr := cmd.Flags().GetString("log-file"); flagErr == nil && logFile != "" {
		cfg.LogFile = logFile
	}
	switch cfg.Env {
	case constants.Dev, constants.Stage, constants.Prod:
	default:
		return nil, nil, errs.ErrInvalidEnvironemt
	}

	// patch logconfig file location with root level log file location
	if cfg.LogFile != "" {
		cfg.LogConfig.FileLocation = filepath.Join(cfg.LogFile, "ax.log")
	}

	// You can also use logrus implementation
	// by using lumber.InstanceLogrusLogger
	logger, err := lumber.NewLogger(&cfg.LogConfig, cfg.Verbose, lumber.InstanceZapLogger)
	if err != nil {
		log.Printf("could not instantiate logger %s", err.Error())
		return nil, nil, err
	}
	// tag every log line of this invocation with a run id
	logger = logger.WithFields(lumber.Fields{"runID": utils.GenerateUUID()})
	return cfg, logger, nil
}

// initTracing initializes the tracer when a collector endpoint is configured.
// The returned function cleans the tracer up and must be deferred.
func initTracing(ctx context.Context, cfg *config.Config, logger lumber.Logger) func() {
	if cfg.Tracing.OtelEndpoint == "" {
		return func() {}
	}
	tracerCleanup := opentelemetry.InitTracer(ctx, cfg, logger)
	return func() {
		if tracerErr := tracerCleanup(context.Background()); tracerErr != nil {
			logger.Errorf("Failed to cleanup the tracer %v", tracerErr)
		}
	}
}

// writeArtifact writes the payload as indented JSON to path, or to stdout
// when path is empty.
func writeArtifact(logger lumber.Logger, path string, payload interface{}) error {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal artifact")
	}
	if path == "" {
		fmt.Println(string(raw))
		return nil
	}
	if err := os.WriteFile(path, raw, constants.ArtifactFileMode); err != nil {
		return errors.Wrapf(err, "failed to write artifact %s", path)
	}
	logger.Infof("artifact written to %s", path)
	return nil
}
