package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/LambdaTest/axon/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(t *testing.T, configFile string) *cobra.Command {
	t.Helper()
	// loading goes through the package level viper instance, start every
	// test from a clean slate
	viper.Reset()
	cmd := &cobra.Command{Use: "axon"}
	cmd.Flags().StringP("config", "c", "", "the config file to use")
	cmd.Flags().Bool("verbose", false, "enable verbose logging")
	if configFile != "" {
		require.NoError(t, cmd.Flags().Set("config", configFile))
	}
	return cmd
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newTestCommand(t, ""))
	require.NoError(t, err)

	assert.True(t, cfg.LogConfig.EnableConsole)
	assert.Equal(t, "info", cfg.LogConfig.ConsoleLevel)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, ".", cfg.Discovery.RootDir)
	assert.Equal(t, []string{constants.DefaultSpecPattern}, cfg.Discovery.SpecPatterns)
	assert.Equal(t, constants.DefaultCapabilityPrefix, cfg.Discovery.CapabilityPrefix)
	assert.Equal(t, constants.DefaultParseConcurrency, cfg.Discovery.Concurrency)
	assert.Equal(t, constants.DefaultShardCount, cfg.Shard.Count)
	assert.Equal(t, constants.DefaultSpecDuration, cfg.Shard.DefaultSpecDuration)
	assert.Equal(t, constants.DefaultMaxGroupDuration, cfg.Shard.MaxGroupDuration)
	assert.Equal(t, constants.DefaultMetricsFileName, cfg.Metrics.FilePath)
	assert.Equal(t, 60*time.Second, cfg.Metrics.FetchTimeout)
	assert.Equal(t, constants.GitHubProvider, cfg.CI.Provider)
	assert.Equal(t, constants.DefaultMatrixFileName, cfg.CI.OutputFile)
	assert.Equal(t, constants.DefaultFixtureStartupCost, cfg.CI.FixtureStartupCost)
	assert.Same(t, cfg, GlobalConfig)
}

func TestLoadFromConfigFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "axon.json")
	payload := `{
  "data": {
    "env": "dev",
    "discovery": {
      "rootDir": "./e2e",
      "specPatterns": ["e2e/**/*.spec.ts", "e2e/**/*.spec.js"],
      "skipTags": ["@wip"]
    },
    "shard": {
      "count": 4
    },
    "ci": {
      "capabilityImages": {
        "email": "ghcr.io/acme/mailpit:v1"
      }
    }
  }
}`
	require.NoError(t, os.WriteFile(configFile, []byte(payload), 0644))

	cfg, err := Load(newTestCommand(t, configFile))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "./e2e", cfg.Discovery.RootDir)
	assert.Equal(t, []string{"e2e/**/*.spec.ts", "e2e/**/*.spec.js"}, cfg.Discovery.SpecPatterns)
	assert.Equal(t, []string{"@wip"}, cfg.Discovery.SkipTags)
	assert.Equal(t, 4, cfg.Shard.Count)
	assert.Equal(t, map[string]string{"email": "ghcr.io/acme/mailpit:v1"}, cfg.CI.CapabilityImages)
	// values the file does not mention keep their defaults
	assert.Equal(t, constants.DefaultCapabilityPrefix, cfg.Discovery.CapabilityPrefix)
	assert.Equal(t, constants.GitHubProvider, cfg.CI.Provider)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "axon.json")
	payload := `{"data": {"shard": {"count": 0}}}`
	require.NoError(t, os.WriteFile(configFile, []byte(payload), 0644))

	_, err := Load(newTestCommand(t, configFile))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
