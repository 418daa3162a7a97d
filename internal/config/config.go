// Package config loads server configuration from file, environment
// and built-in defaults, in that order of precedence (env wins).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sherintbrody/journal-backend/pkg/types"
	"github.com/spf13/viper"
)

const envPrefix = "JOURNAL"

// Load reads configuration from the given file path. An empty path
// loads defaults plus environment overrides only. A missing file at
// an explicit path is an error; every other case falls back cleanly.
func Load(path string) (*types.Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8085)
	v.SetDefault("server.websocket_path", "/ws")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.max_connections", 100)
	v.SetDefault("server.enable_metrics", true)

	v.SetDefault("journal.data_dir", "./data")

	defaults := types.DefaultAnalyticsConfig()
	v.SetDefault("analytics.rolling_window_size", defaults.RollingWindowSize)
	v.SetDefault("analytics.rolling_min_trades", defaults.RollingMinTrades)
	v.SetDefault("analytics.max_planned_rr", defaults.MaxPlannedRR)
}

func validate(cfg *types.Config) error {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	if cfg.Journal.DataDir == "" {
		return fmt.Errorf("journal data_dir must not be empty")
	}
	if cfg.Analytics.RollingWindowSize <= 0 {
		return fmt.Errorf("analytics rolling_window_size must be positive")
	}
	if cfg.Analytics.MaxPlannedRR <= 0 {
		return fmt.Errorf("analytics max_planned_rr must be positive")
	}
	return nil
}
