// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: STOREFRONT_API_URL, STOREFRONT_SESSION,
//     STOREFRONT_KEYRING_PASSPHRASE.
//  3. Optional config file selected via -c or -config; YAML when the name ends
//     in .yaml/.yml, JSON otherwise.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend API base URL
//	-i int      online status check interval (seconds)
//	-s string   session backend (memory, sqlite, keyring)
//	-l string   log level
//
// # File schema
//
// Intervals use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds:
//
//	api_base_url: https://shop.example.com/api
//	online_check_interval: 5s
//	request_timeout: 20s
//	session_backend: keyring
//	log_backend: zap
//	log_level: debug
package config
