package config

import "time"

// Config holds runtime settings for the portal client.
//
// Fields:
//   - BaseURL: root of the backend REST API, including the /api prefix.
//   - RequestTimeout: upper bound for a single HTTP request.
//   - DatabasePath: SQLite file holding the local credential store.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	DatabasePath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://api.onehealthportal.xyz:8000/api"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "portal.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including an optional .env file), a JSON file (if one was
// pointed to with -c/-config), and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
