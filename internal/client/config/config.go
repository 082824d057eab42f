package config

import "time"

// Config holds runtime settings for the SkillGraph CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP API.
//   - RequestTimeout: per-request timeout for backend calls.
//   - LocalStorePath: path of the on-device fallback store blob.
//   - SessionSlotPath: path of the restart-surviving identity slot.
type Config struct {
	ServerBaseURL   string
	RequestTimeout  time.Duration
	LocalStorePath  string
	SessionSlotPath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 10 * time.Second
	c.LocalStorePath = "skillgraph_offline_db.json"
	c.SessionSlotPath = "skillgraph_session.json"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
