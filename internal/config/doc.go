// Package config provides configuration structures and utilities for
// reportgen. It defines the options controlling browser automation,
// analysis, chart rendering, and report output, along with YAML config
// file loading and XDG directory helpers.
package config
