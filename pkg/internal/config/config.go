package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Load reads settings.toml the way the rest of the tooling expects it: from
// the working directory or its parent. A missing file is fine as long as the
// required keys arrive through the environment.
func Load() error {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	viper.SetDefault("bind", "0.0.0.0:8445")
	viper.SetDefault("security.token_ttl", "168h")
	viper.SetDefault("cleaner.enabled", false)
	viper.SetDefault("cleaner.retention_days", 30)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}
