package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"spotlogin/pkg/logging"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/spotlogin"
	configFileName = "config.yaml"
)

// osUserHomeDir is swapped in tests.
var osUserHomeDir = os.UserHomeDir

// GetDefaultConfigPath returns ~/.config/spotlogin.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// LoadConfig resolves the configuration from defaults, configPath/config.yaml
// and the process environment. A missing config.yaml is not an error.
func LoadConfig(configPath string) (Config, error) {
	return loadConfig(configPath, nil)
}

// LoadConfigWithEnvironment is LoadConfig with an explicit environment instead
// of the process environment.
func LoadConfigWithEnvironment(configPath string, environ map[string]string) (Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return loadConfig(configPath, environ)
}

func loadConfig(configPath string, environ map[string]string) (Config, error) {
	config := GetDefaultConfig()

	if configPath != "" {
		configFilePath := filepath.Join(configPath, configFileName)
		data, err := os.ReadFile(configFilePath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
		case err != nil:
			return Config{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
		default:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return Config{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
			}
			logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
		}
	}

	if err := ApplyEnvironment(&config, environ); err != nil {
		return Config{}, err
	}

	return config, nil
}

// ApplyEnvironment overlays SPOTLOGIN_* variables onto config. Variables that
// are not set leave the existing value untouched. A nil environ means the
// process environment.
func ApplyEnvironment(config *Config, environ map[string]string) error {
	if err := env.ParseWithOptions(config, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
