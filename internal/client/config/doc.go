// Package config loads runtime configuration for the SkillGraph CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend HTTP API
//	-t int      request timeout (seconds)
//	-d string   path of the local fallback store
//	-s string   path of the session identity slot
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:5000",
//	  "request_timeout": "10s",
//	  "local_store_path": "skillgraph_offline_db.json",
//	  "session_slot_path": "skillgraph_session.json"
//	}
package config
