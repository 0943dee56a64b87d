package core

import (
	"fmt"
	"strings"
)

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Snowflake, Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL, ClickHouse).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison (BigQuery, Hive, DuckDB).
	NormCaseInsensitive
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}

// Normalize applies the normalization strategy to an unquoted identifier.
func (c IdentifierConfig) Normalize(name string) string {
	switch c.Normalization {
	case NormUppercase:
		return strings.ToUpper(name)
	case NormLowercase, NormCaseInsensitive:
		return strings.ToLower(name)
	default:
		return name
	}
}

// QuoteIdentifier quotes an identifier, doubling any embedded end quote.
func (c IdentifierConfig) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, c.QuoteEnd, c.Escape)
	return c.Quote + escaped + c.QuoteEnd
}

// ErrorLevel controls how unsupported constructs are reported during generation.
type ErrorLevel int

const (
	// ErrorLevelIgnore drops unsupported messages silently.
	ErrorLevelIgnore ErrorLevel = iota
	// ErrorLevelWarn logs each message and still returns the generated SQL.
	ErrorLevelWarn
	// ErrorLevelRaise collects messages and fails once the pass completes.
	ErrorLevelRaise
	// ErrorLevelImmediate fails on the first unsupported construct.
	ErrorLevelImmediate
)

var errorLevelNames = map[ErrorLevel]string{
	ErrorLevelIgnore:    "ignore",
	ErrorLevelWarn:      "warn",
	ErrorLevelRaise:     "raise",
	ErrorLevelImmediate: "immediate",
}

// String returns the lower-case name of the level.
func (l ErrorLevel) String() string {
	if name, ok := errorLevelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("ErrorLevel(%d)", int(l))
}

// ParseErrorLevel parses a level name case-insensitively.
func ParseErrorLevel(s string) (ErrorLevel, error) {
	for level, name := range errorLevelNames {
		if strings.EqualFold(s, name) {
			return level, nil
		}
	}
	return ErrorLevelIgnore, fmt.Errorf("unknown error level %q (expected ignore, warn, raise or immediate)", s)
}
