// Package config loads, normalizes, and validates reelgate configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// REELGATE_TOKEN. The Config type centralizes every knob the daemon and CLI
// need, from the bot token to workflow session timeouts.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
