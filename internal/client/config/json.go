package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/skillgraph/skillgraph/internal/flagx"
	"github.com/skillgraph/skillgraph/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "10s"
// or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL   string         `json:"server_base_url"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	LocalStorePath  string         `json:"local_store_path"`
	SessionSlotPath string         `json:"session_slot_path"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. Empty JSON fields leave the current value in
// place. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.LocalStorePath != "" {
		cfg.LocalStorePath = jc.LocalStorePath
	}
	if jc.SessionSlotPath != "" {
		cfg.SessionSlotPath = jc.SessionSlotPath
	}
}
