package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config file names, in lookup order.
const (
	ConfigFileName    = "glot.yaml"
	ConfigFileNameAlt = "glot.yml"
)

// Load reads settings from a YAML file and fills unset fields with the
// defaults. It does not validate them.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	ApplyDefaults(&s)
	return &s, nil
}

// LoadFromDir loads the config file of dir. A directory without one yields
// nil settings and no error.
func LoadFromDir(dir string) (*Settings, error) {
	path := FindConfigFile(dir)
	if path == "" {
		return nil, nil
	}
	return Load(path)
}

// FindConfigFile returns the config file in dir, or "".
func FindConfigFile(dir string) string {
	for _, name := range [...]string{ConfigFileName, ConfigFileNameAlt} {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Discover returns the config file of start or of its nearest ancestor
// that has one, or "".
func Discover(start string) string {
	for dir := filepath.Clean(start); ; dir = filepath.Dir(dir) {
		if path := FindConfigFile(dir); path != "" {
			return path
		}
		if filepath.Dir(dir) == dir {
			return ""
		}
	}
}
