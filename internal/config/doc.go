// Package config loads, normalizes, and validates doorops configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DATABASE_URL. The Config type centralizes every knob the maintenance
// commands need: where the storefront database lives, where the served
// uploads directory is mounted, which property the photo workflows track, and
// how to reach the storefront HTTP API.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
