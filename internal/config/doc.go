// Package config loads and merges lintpost configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (LINTPOST_LINTER, LINTPOST_ENABLED_TYPES, LINTPOST_PR, etc.,
//     plus the GITHUB_* variables set by GitHub Actions)
//  3. Config file ($XDG_CONFIG_HOME/lintpost/config.yaml)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write the config file,
// and [SetField] to update a single key.
package config
