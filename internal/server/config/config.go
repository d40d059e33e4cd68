// Package config handles configuration for the greeter server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the greeter server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - LogLevel: one of debug, info, warn, error.
//   - ReadHeaderTimeout: limit for reading request headers.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	EndpointAddrHTTP  string
	DatabaseDSN       string
	LogLevel          string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.LogLevel = "info"
	c.ReadHeaderTimeout = 5 * time.Second
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
