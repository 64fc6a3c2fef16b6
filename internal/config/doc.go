// Package config loads, normalizes, and validates the stridesync TOML
// configuration file.
package config
