package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveConfig saves configuration to YAML file
func SaveConfig(cfg *File, configPath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// GetConfigPath returns the configuration file viper finds when no file is
// given explicitly: ./tracestack.yaml, then $HOME/tracestack.yaml. When
// neither exists it returns the current directory's path.
func GetConfigPath() string {
	// Check for config file in current directory first
	if _, err := os.Stat(ConfigFile); err == nil {
		return ConfigFile
	}

	// Check home directory
	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, ConfigFile)
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}

	// Default to current directory
	return ConfigFile
}
