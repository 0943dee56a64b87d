// Package config provides configuration management for the glot CLI.
//
// It extends the shared transpiler settings from internal/config with
// CLI-only fields such as verbosity and the AST output encoding.
package config

import (
	sharedcfg "github.com/leapstack-labs/glot/internal/config"
)

// Settings is an alias for the shared transpiler settings.
type Settings = sharedcfg.Settings

// Config holds all CLI configuration options.
type Config struct {
	Settings `koanf:",squash"`

	Verbose bool   `koanf:"verbose"`
	Output  string `koanf:"output"`
}

// Output encodings accepted by the ast command.
const (
	OutputYAML    = "yaml"
	OutputJSON    = "json"
	OutputMsgpack = "msgpack"
)

// Default configuration values.
const (
	DefaultOutput = OutputYAML
)
