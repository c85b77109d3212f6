// Package config loads the logtailer TOML configuration.
//
// # Resolution
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/logtailer/config.toml
//  3. If the file doesn't exist, fall back to Default()
//  4. Missing or empty fields keep their defaults
//
// # TOML Format
//
//	path = "~/logs/app.log"
//	poll_interval_ms = 1000
//	max_duration_hours = 0   # 0 = unlimited
//	from_end = false
//	backlog = 10             # lines kept when from_end is set
//	notify = false           # wake on filesystem events
//	keep_lines = 5000        # lines held for the viewer
//	metrics_addr = ""        # e.g. "127.0.0.1:9100"
//
//	[log]
//	level = "warn"           # debug, info, warn, error
//	file = ""
//
// Tilde expansion is applied to path and log.file. Command-line flags are
// applied on top of the loaded Config by the caller.
package config
