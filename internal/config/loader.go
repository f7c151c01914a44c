package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "quadfall.yaml"

// Load loads the quadfall configuration.
// Search order: customPath -> ~/.quadfall/configs/quadfall.yaml -> ./configs/quadfall.yaml -> embedded default
// Values missing from a file keep their defaults.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, cfg.Validate()
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".quadfall", "configs", filename)
}

// Dir returns ~/.quadfall, or "." when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".quadfall")
}

// ExpandHome replaces a leading ~ with the home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
