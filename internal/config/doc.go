// Package config loads, normalizes, and validates goalie configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// GOALIE_GOALS_DIR. The Config type centralizes every knob the CLI needs so
// the goal store, log output, and breakdown strategy are discovered in one
// pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
