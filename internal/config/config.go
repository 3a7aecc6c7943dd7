// This file defines the configuration structure for the application.
package config

import (
	// use Viper for loading the config.yml file.
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Port           int    `mapstructure:"port"`
	VerifyInterval int    `mapstructure:"verify_interval"`
	Tool           string `mapstructure:"tool"`
	Database       struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Target struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"target"`
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
func Load() (*Config, error) {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or "yaml"
	viper.AddConfigPath(".")      // looking for config in the current directory

	// --- Environment Variable Overrides ---
	// This tells Viper to look for environment variables with a "LIBERTYFM_" prefix.
	// e.g., LIBERTYFM_TARGET_PATH will override the `target.path` key.
	viper.SetEnvPrefix("LIBERTYFM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("port", 4173)
	viper.SetDefault("verify_interval", 60)
	viper.SetDefault("tool", "")
	viper.SetDefault("database.path", "./libertyfm.db")
	viper.SetDefault("target.path", "./web/sounds/gta/3")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error and use defaults
		} else {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
