package config

import (
	"fmt"
	"slices"
)

// Validate checks the shared settings and the CLI-only fields.
func (c *Config) Validate() error {
	if err := c.Settings.Validate(); err != nil {
		return err
	}
	if !slices.Contains([]string{OutputYAML, OutputJSON, OutputMsgpack}, c.Output) {
		return fmt.Errorf("output must be one of yaml, json or msgpack, got %q", c.Output)
	}
	return nil
}
