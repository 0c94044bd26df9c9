// Package config loads, normalizes, and validates samplekit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for the
// external tool binaries (SAMPLEKIT_FLAC, SAMPLEKIT_SOX, SAMPLEKIT_FFMPEG).
// The Config type centralizes the naming conventions for fragments and
// samples so the join and scan commands agree on them.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
