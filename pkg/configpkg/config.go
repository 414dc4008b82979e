// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"

	"github.com/spf13/viper"
)

// EnvDevelopment is the GO_ENV value that turns on human readable logs.
const EnvDevelopment = "development"

// Config stores all configuration of the application.
//
// The values are read by viper from an optional app.env file or LEDGER_ prefixed
// environment variables.
type Config struct {
	DataDir     string `mapstructure:"DATA_DIR"`
	Environment string `mapstructure:"GO_ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration from file or environment variables.
//
// A missing app.env is not an error, the defaults and the environment are used instead.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("DATA_DIR", ".")
	v.SetDefault("GO_ENV", "production")
	v.SetDefault("LOG_LEVEL", "warn")

	v.SetEnvPrefix("LEDGER")
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
