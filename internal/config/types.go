// Package config provides the shared transpiler settings for glot.
// This package is decoupled from CLI concerns so library callers can load
// a glot.yaml without pulling in cobra.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/glot/pkg/core"
	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/generator"
)

// Settings holds the options that shape a transpile run.
type Settings struct {
	Read             string `koanf:"read"`
	Write            string `koanf:"write"`
	Pretty           bool   `koanf:"pretty"`
	Identify         bool   `koanf:"identify"`
	Normalize        bool   `koanf:"normalize"`
	LeadingComma     bool   `koanf:"leading_comma"`
	UnsupportedLevel string `koanf:"unsupported_level"`
	MaxUnsupported   int    `koanf:"max_unsupported"`
	Pad              int    `koanf:"pad"`
	MaxTextWidth     int    `koanf:"max_text_width"`
}

// Validate checks the level name and that both dialects are registered.
func (s *Settings) Validate() error {
	if _, err := core.ParseErrorLevel(s.UnsupportedLevel); err != nil {
		return fmt.Errorf("unsupported_level: %w", err)
	}
	for key, name := range map[string]string{"read": s.Read, "write": s.Write} {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, err := dialect.GetOrRaise(name); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	if s.MaxUnsupported < 0 {
		return fmt.Errorf("max_unsupported must not be negative, got %d", s.MaxUnsupported)
	}
	return nil
}

// Level returns the parsed unsupported level. Unknown names fall back to
// warn; call Validate first to reject them.
func (s *Settings) Level() core.ErrorLevel {
	level, err := core.ParseErrorLevel(s.UnsupportedLevel)
	if err != nil {
		return core.ErrorLevelWarn
	}
	return level
}

// GeneratorOptions converts the settings to generator options.
func (s *Settings) GeneratorOptions() []generator.Option {
	opts := []generator.Option{
		generator.Pretty(s.Pretty),
		generator.Identify(s.Identify),
		generator.Normalize(s.Normalize),
		generator.LeadingComma(s.LeadingComma),
		generator.Unsupported(s.Level()),
	}
	if s.MaxUnsupported > 0 {
		opts = append(opts, generator.MaxUnsupported(s.MaxUnsupported))
	}
	if s.Pad > 0 {
		opts = append(opts, generator.Pad(s.Pad))
	}
	if s.MaxTextWidth > 0 {
		opts = append(opts, generator.MaxTextWidth(s.MaxTextWidth))
	}
	return opts
}
