// Package config handles configuration for the cartsync client,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the cartsync client.
//
// Fields:
//   - ServerAddr: base URL of the backend HTTP API.
//   - DatabasePath: path of the local SQLite database file.
//   - SyncInterval: periodic background sync cadence while online.
//   - PingInterval: how often the client probes server reachability.
type Config struct {
	ServerAddr   string
	DatabasePath string
	SyncInterval time.Duration
	PingInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://127.0.0.1:8080"
	c.DatabasePath = "cartsync.db"
	c.SyncInterval = 30 * time.Second
	c.PingInterval = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
