// Package types provides configuration types for the journal backend.
package types

import "time"

// ServerConfig represents HTTP/WebSocket server configuration.
type ServerConfig struct {
	Host           string        `json:"host" mapstructure:"host"`
	Port           int           `json:"port" mapstructure:"port"`
	WebSocketPath  string        `json:"websocketPath" mapstructure:"websocket_path"`
	ReadTimeout    time.Duration `json:"readTimeout" mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `json:"writeTimeout" mapstructure:"write_timeout"`
	MaxConnections int           `json:"maxConnections" mapstructure:"max_connections"`
	EnableMetrics  bool          `json:"enableMetrics" mapstructure:"enable_metrics"`
}

// JournalConfig represents trade journal storage configuration.
type JournalConfig struct {
	DataDir string `json:"dataDir" mapstructure:"data_dir"`
}

// AnalyticsConfig represents engine tuning knobs. The zero value is
// not usable; DefaultAnalyticsConfig supplies the documented defaults.
type AnalyticsConfig struct {
	RollingWindowSize int     `json:"rollingWindowSize" mapstructure:"rolling_window_size"`
	RollingMinTrades  int     `json:"rollingMinTrades" mapstructure:"rolling_min_trades"`
	MaxPlannedRR      float64 `json:"maxPlannedRR" mapstructure:"max_planned_rr"`
}

// DefaultAnalyticsConfig returns the standard engine parameters.
func DefaultAnalyticsConfig() AnalyticsConfig {
	return AnalyticsConfig{
		RollingWindowSize: 20,
		RollingMinTrades:  5,
		MaxPlannedRR:      10,
	}
}

// Config is the top-level application configuration.
type Config struct {
	LogLevel  string          `json:"logLevel" mapstructure:"log_level"`
	Server    ServerConfig    `json:"server" mapstructure:"server"`
	Journal   JournalConfig   `json:"journal" mapstructure:"journal"`
	Analytics AnalyticsConfig `json:"analytics" mapstructure:"analytics"`
}
