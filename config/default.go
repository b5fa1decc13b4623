package config

import (
	"github.com/LambdaTest/axon/pkg/constants"
	"github.com/spf13/viper"
)

func setDefaultConfig() {
	viper.SetDefault("Data.LogConfig.EnableConsole", true)
	viper.SetDefault("Data.LogConfig.ConsoleJSONFormat", false)
	viper.SetDefault("Data.LogConfig.ConsoleLevel", "info")
	viper.SetDefault("Data.LogConfig.EnableFile", false)
	viper.SetDefault("Data.LogConfig.FileJSONFormat", true)
	viper.SetDefault("Data.LogConfig.FileLevel", "debug")
	viper.SetDefault("Data.LogConfig.FileLocation", "./axon.log")
	viper.SetDefault("Data.Env", "prod")
	viper.SetDefault("Data.Verbose", false)
	viper.SetDefault("Data.Discovery.RootDir", ".")
	viper.SetDefault("Data.Discovery.SpecPatterns", []string{constants.DefaultSpecPattern})
	viper.SetDefault("Data.Discovery.SkipTags", []string{})
	viper.SetDefault("Data.Discovery.CapabilityPrefix", constants.DefaultCapabilityPrefix)
	viper.SetDefault("Data.Discovery.Concurrency", constants.DefaultParseConcurrency)
	viper.SetDefault("Data.Shard.Count", constants.DefaultShardCount)
	viper.SetDefault("Data.Shard.DefaultSpecDuration", constants.DefaultSpecDuration)
	viper.SetDefault("Data.Shard.MaxGroupDuration", constants.DefaultMaxGroupDuration)
	viper.SetDefault("Data.Metrics.FilePath", constants.DefaultMetricsFileName)
	viper.SetDefault("Data.Metrics.FetchTimeout", constants.DefaultMetricsFetchTimeout)
	viper.SetDefault("Data.CI.Provider", constants.GitHubProvider)
	viper.SetDefault("Data.CI.OutputFile", constants.DefaultMatrixFileName)
	viper.SetDefault("Data.CI.FixtureStartupCost", constants.DefaultFixtureStartupCost)
}
