package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	sharedcfg "github.com/leapstack-labs/glot/internal/config"
)

type loggerKey struct{}

// envPrefix prefixes the environment variables read into the config, as in
// GLOT_WRITE=tsql.
const envPrefix = "GLOT_"

// flagKeys maps flag names whose config key is not the snake_case form of
// the flag.
var flagKeys = map[string]string{
	"unsupported": "unsupported_level",
}

// State of the last LoadConfig call, read by commands.
var (
	configFileUsed string
	currentConfig  *Config
)

// ResetConfig forgets the loaded configuration. Used for testing.
func ResetConfig() {
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig layers defaults, the config file, GLOT_* environment
// variables and explicitly set flags, later layers winning, then decodes
// and validates the result.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := sharedcfg.Defaults()
	defaults["verbose"] = false
	defaults["output"] = DefaultOutput
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := cfgFile
	if path == "" {
		path = discoverConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Output = strings.ToLower(cfg.Output)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	configFileUsed = path
	currentConfig = &cfg
	return &cfg, nil
}

// discoverConfigFile finds glot.yaml or glot.yml in the working directory
// or its nearest ancestor.
func discoverConfigFile() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return sharedcfg.Discover(cwd)
}

// envKey turns GLOT_UNSUPPORTED_LEVEL into unsupported_level.
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// flagKey turns a flag name into its config key.
func flagKey(name string) string {
	key := strings.ReplaceAll(name, "-", "_")
	if mapped, ok := flagKeys[key]; ok {
		return mapped
	}
	return key
}

// GetConfigFileUsed returns the path of the config file that was loaded, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the loaded configuration, or the defaults when
// nothing has been loaded.
func GetCurrentConfig() *Config {
	if currentConfig != nil {
		return currentConfig
	}
	cfg := &Config{Output: DefaultOutput}
	sharedcfg.ApplyDefaults(&cfg.Settings)
	return cfg
}

// LoggerKey returns the context key of the command logger. It lives here
// so commands can read the logger without importing the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger returns the command logger, or a discard logger.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
