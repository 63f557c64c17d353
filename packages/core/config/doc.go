// Package config handles configuration loading and management for matchspec.
//
// It provides functionality for:
//   - Loading configuration from .matchspec.yaml or matchspec.yaml files
//   - Default configuration values
//   - Merging file settings with command-line overrides
package config
