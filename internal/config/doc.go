// Package config loads, normalizes, and validates mediapair configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MEDIAPAIR_DROP_DIR. The Config type centralizes every knob the CLI and the
// interactive buffer need: where the library database and media cache live,
// the row metrics and settle timing of the reorder engine, and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
