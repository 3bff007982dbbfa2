// Package config loads runtime configuration for the Dayscribe CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c / -config or DAYSCRIBE_CONFIG.
//     Files ending in .toml are decoded as TOML, anything else as JSON.
//  3. ANTHROPIC_API_KEY, when the file did not set an API key.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-d string         data directory holding the SQLite file
//	-l string         log level (debug, info, warn, error)
//	-f string         log format (text, json, logfmt)
//	-m string         Anthropic model used for suggestions
//	-latency duration simulated login/register/logout delay
//
// # File format
//
// Durations are Go duration strings ("500ms") or, in JSON, integer
// nanoseconds. Keys that are absent keep their previous value.
//
//	data_dir = "/home/me/.dayscribe"
//	log_level = "debug"
//	simulated_latency = "0s"
//	suggest_timeout = "20s"
//	anthropic_model = "claude-sonnet-4-20250514"
package config
