package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/greeter/internal/flagx"
	"github.com/dmitrijs2005/greeter/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// either "5s"-style strings or integer nanoseconds. Pointer fields let an
// absent key leave the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP  *string         `json:"endpoint_addr_http"`
	DatabaseDSN       *string         `json:"database_dsn"`
	LogLevel          *string         `json:"log_level"`
	ReadHeaderTimeout *timex.Duration `json:"read_header_timeout"`
	ShutdownTimeout   *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the file named by -c/-config onto config.
// Without the flag nothing is loaded. An unreadable file or invalid JSON
// panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	if c.ReadHeaderTimeout != nil {
		config.ReadHeaderTimeout = c.ReadHeaderTimeout.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}
