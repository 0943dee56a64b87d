package config

// Default configuration values.
const (
	DefaultRead             = "ansi"
	DefaultUnsupportedLevel = "warn"
	DefaultMaxUnsupported   = 3
	DefaultPad              = 2
	DefaultMaxTextWidth     = 80
)

// Defaults returns the default settings as a flat key map, the form the
// koanf confmap provider loads.
func Defaults() map[string]any {
	return map[string]any{
		"read":              DefaultRead,
		"write":             "",
		"pretty":            false,
		"identify":          false,
		"normalize":         false,
		"leading_comma":     false,
		"unsupported_level": DefaultUnsupportedLevel,
		"max_unsupported":   DefaultMaxUnsupported,
		"pad":               DefaultPad,
		"max_text_width":    DefaultMaxTextWidth,
	}
}

// ApplyDefaults fills unset fields of s.
func ApplyDefaults(s *Settings) {
	if s == nil {
		return
	}
	if s.Read == "" {
		s.Read = DefaultRead
	}
	if s.UnsupportedLevel == "" {
		s.UnsupportedLevel = DefaultUnsupportedLevel
	}
	if s.MaxUnsupported == 0 {
		s.MaxUnsupported = DefaultMaxUnsupported
	}
	if s.Pad == 0 {
		s.Pad = DefaultPad
	}
	if s.MaxTextWidth == 0 {
		s.MaxTextWidth = DefaultMaxTextWidth
	}
}
