package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const DefaultDetectURL = "http://localhost:8090"

type Config struct {
	DetectURL    string // Base URL of the mock detection service
	TemplatesDir string // Directory of narrative template overrides (optional)
	DefaultDB    string // Default journal database path
}

type tomlConfig struct {
	DetectURL    string `toml:"detect_url"`
	TemplatesDir string `toml:"templates_dir"`
	DB           string `toml:"db"`
}

// Load reads config from ~/.config/dogtracer/
func Load() (*Config, error) {
	cfg := &Config{
		DetectURL: DefaultDetectURL,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil // Use defaults
	}

	configDir := filepath.Join(home, ".config", "dogtracer")
	cfg.DefaultDB = filepath.Join(configDir, "journal.db")
	cfg.TemplatesDir = filepath.Join(configDir, "templates")

	tomlPath := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			if tc.DetectURL != "" {
				cfg.DetectURL = tc.DetectURL
			}
			if tc.TemplatesDir != "" {
				cfg.TemplatesDir = tc.TemplatesDir
			}
			if tc.DB != "" {
				cfg.DefaultDB = tc.DB
			}
		}
	}

	return cfg, nil
}
