package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// GlobalConfig stores the config instance for global use
var GlobalConfig *Config

// Load loads config from command instance to predefined config variables
func Load(cmd *cobra.Command) (*Config, error) {
	err := viper.BindPFlags(cmd.Flags())
	if err != nil {
		return nil, err
	}

	// default viper configs
	viper.SetEnvPrefix("AX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// set default configs
	setDefaultConfig()

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".axon")
		viper.AddConfigPath("./")
	}

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("Warning: No configuration file found. Proceeding with defaults")
	}

	return populateConfig(new(ConfigWrapper))
}

// populateConfig unmarshals the viper state into the config struct and
// validates it.
func populateConfig(configWrapper *ConfigWrapper) (*Config, error) {
	if err := viper.Unmarshal(configWrapper, func(decoderConfig *mapstructure.DecoderConfig) {
		// the config sits under the "data" key of the config file
		decoderConfig.TagName = "json"
	}); err != nil {
		return nil, err
	}
	if err := validateConfig(&configWrapper.Config); err != nil {
		return nil, err
	}
	GlobalConfig = &configWrapper.Config
	return &configWrapper.Config, nil
}
