package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "doodle.yaml"

// LoadDoodle loads the game configuration.
// Search order: customPath -> ~/.doodle/configs/doodle.yaml -> ./configs/doodle.yaml -> embedded default.
// Files are decoded on top of the defaults, so a file may override a single key.
// The returned source names where the configuration came from.
func LoadDoodle(customPath string) (cfg DoodleConfig, source string, err error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err = Parse(data)
		if err != nil {
			return cfg, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		// A broken file in a search directory falls through to the next one
		if cfg, err := Parse(data); err == nil {
			return cfg, path, nil
		}
	}

	if cfg, err := Parse(defaultDoodleYAML); err == nil {
		return cfg, "embedded", nil
	}
	return DefaultDoodleConfig(), "builtin", nil
}

// Parse decodes YAML over the default configuration and validates the result.
func Parse(data []byte) (DoodleConfig, error) {
	cfg := DefaultDoodleConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg DoodleConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".doodle", "configs", filename)
}
