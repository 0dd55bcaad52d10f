package config

import "time"

// Config holds runtime settings for the ticket tracker client.
//
// Fields:
//   - DatabaseDSN: path (or sqlite DSN) of the local store file.
//   - AuthLatency: artificial delay applied to register/login to model a
//     remote call. The original product used one second; set 0 to disable.
type Config struct {
	DatabaseDSN string
	AuthLatency time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "tickets.db"
	c.AuthLatency = time.Second
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
