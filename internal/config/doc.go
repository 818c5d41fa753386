// Package config loads, normalizes, and validates mediastore configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the engine and CLI need: asset roots, upload limits, migration
// verification behavior, and external codec tools.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths and clear validation errors.
package config
