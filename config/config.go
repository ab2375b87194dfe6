package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// DefaultOutput is where the presentation is written when nothing else is configured
const DefaultOutput = "docs/PROJECT_OVERVIEW_PRESENTATION.pptx"

// Config structure
type Config struct {
	Output      string   `json:"output" env:"PCQM_DECK_OUTPUT"`
	Language    string   `json:"language" env:"PCQM_DECK_LANG"`
	DataDir     string   `json:"dataDir" env:"PCQM_DECK_DATA_DIR"`
	Formats     []string `json:"formats" env:"PCQM_DECK_FORMATS" envSeparator:","`
	DetailedLog bool     `json:"detailedLog" env:"PCQM_DECK_DETAILED_LOG"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Output:   DefaultOutput,
		Language: "English",
		DataDir:  defaultDataDir(),
		Formats:  []string{"pptx"},
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "pcqm-deck")
	}
	return ".pcqm-deck"
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load builds the configuration from defaults, then the JSON file at path
// (skipped when path is empty), then PCQM_DECK_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required settings are present
func (c Config) Validate() error {
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("config: output path is empty")
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("config: data directory is empty")
	}
	return nil
}

// LogDir is where per-run log files go
func (c Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}
