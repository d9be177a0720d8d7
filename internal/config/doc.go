// Package config loads, normalizes, and validates phangs2caom2 configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PHANGS2CAOM2_LOG_LEVEL. The Config type centralizes the collection, naming,
// and output settings the CLI needs so every ingestion run decodes names and
// writes records the same way.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
