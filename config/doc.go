// Package config loads and validates the engine configuration.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then FIREWATCH_* environment variable overrides. Validate fills any field
// left zero with the engine's operational constants, so a missing config file
// yields a fully working default setup against a local sim backend.
package config
