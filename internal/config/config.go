// Package config loads Altair configuration from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/getaltair/altair-sub003/internal/storage"
)

type AssistConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type Config struct {
	Addr      string       `yaml:"addr"`
	DBPath    string       `yaml:"db_path"`
	Timezone  string       `yaml:"timezone"`
	LogFormat string       `yaml:"log_format"` // text or json
	Assist    AssistConfig `yaml:"assist"`
}

func defaults() (*Config, error) {
	dbPath, err := storage.DefaultDBPath()
	if err != nil {
		return nil, err
	}
	return &Config{
		Addr:      ":8080",
		DBPath:    dbPath,
		LogFormat: "text",
	}, nil
}

// Load builds the config: defaults, then the YAML file at path (if any, and
// missing files are fine when the path was not explicitly requested), then
// environment overrides.
func Load(path string) (*Config, error) {
	cfg, err := defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ALTAIR_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("ALTAIR_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("ALTAIR_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("ALTAIR_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("ALTAIR_ASSIST_API_KEY"); v != "" {
		cfg.Assist.APIKey = v
	} else if cfg.Assist.APIKey == "" {
		cfg.Assist.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if v := os.Getenv("ALTAIR_ASSIST_BASE_URL"); v != "" {
		cfg.Assist.BaseURL = v
	}
	if v := os.Getenv("ALTAIR_ASSIST_MODEL"); v != "" {
		cfg.Assist.Model = v
	}
}

// Location resolves the configured time zone for energy-budget day
// boundaries; empty means the system's local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
