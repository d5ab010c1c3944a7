// Package config loads the locksim YAML configuration.
//
// Precedence, lowest first: built-in defaults, the config file, LOCKSIM_*
// environment variables, command-line flags (applied by cmd).
package config
