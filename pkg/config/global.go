package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents the global raider configuration
type GlobalConfig struct {
	LogLevel  string `yaml:"log_level,omitempty"`
	Color     string `yaml:"color,omitempty"`
	VcpkgRoot string `yaml:"vcpkg_root,omitempty"`
}

// ColorModes lists the accepted values of the color key
var ColorModes = []string{"auto", "always", "never"}

// GetConfigDir returns the directory where raider stores its global config
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// Use ~/.config/raider on Unix, %APPDATA%/raider on Windows
	var configDir string
	if runtime.GOOS == "windows" {
		configDir = filepath.Join(os.Getenv("APPDATA"), "raider")
	} else {
		configDir = filepath.Join(homeDir, ".config", "raider")
	}

	return configDir, nil
}

// GetConfigPath returns the path to the global raider config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// LoadGlobal loads the global raider configuration
func LoadGlobal() (*GlobalConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	// If config doesn't exist, return default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config GlobalConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// SaveGlobal saves the global raider configuration
func SaveGlobal(config *GlobalConfig) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GlobalKeys returns the settable keys in sorted order
func GlobalKeys() []string {
	keys := []string{"log_level", "color", "vcpkg_root"}
	sort.Strings(keys)
	return keys
}

// Get returns the value stored under key
func (c *GlobalConfig) Get(key string) (string, error) {
	switch key {
	case "log_level":
		return c.LogLevel, nil
	case "color":
		return c.Color, nil
	case "vcpkg_root":
		return c.VcpkgRoot, nil
	}
	return "", fmt.Errorf("unknown config key %q (valid keys: %v)", key, GlobalKeys())
}

// Set stores value under key after validating it
func (c *GlobalConfig) Set(key, value string) error {
	switch key {
	case "log_level":
		c.LogLevel = value
	case "color":
		if !slices.Contains(ColorModes, value) {
			return fmt.Errorf("invalid color mode %q (valid: %v)", value, ColorModes)
		}
		c.Color = value
	case "vcpkg_root":
		if value != "" {
			abs, err := filepath.Abs(value)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", value, err)
			}
			value = abs
		}
		c.VcpkgRoot = value
	default:
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, GlobalKeys())
	}
	return nil
}
