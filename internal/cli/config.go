package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/evcraddock/sales-tracker/internal/client"
	"github.com/evcraddock/sales-tracker/internal/db"
)

// Config holds settings persisted to ~/.config/st/config.yaml.
type Config struct {
	DBPath         string `yaml:"db_path,omitempty" json:"db_path,omitempty"`
	Region         string `yaml:"region,omitempty" json:"region,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	LogJSON        bool   `yaml:"log_json,omitempty" json:"log_json,omitempty"`
	RemindSchedule string `yaml:"remind_schedule,omitempty" json:"remind_schedule,omitempty"`
}

// defaultConfig is what `st config init` writes.
func defaultConfig() Config {
	return Config{
		Region:         client.DefaultRegion,
		LogLevel:       "warn",
		RemindSchedule: "0 8 * * 1-5",
	}
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "st", "config.yaml"), nil
}

// readConfigFile reads the config file.
// Returns a zero-value config if the file doesn't exist.
func readConfigFile() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// saveConfig writes cfg to the config file.
func saveConfig(cfg Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// loadDotEnv loads .env from the working directory if there is one.
// Variables already set in the environment win.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading .env: %w", err)
}

// loadConfig reads the config file and applies ST_* environment overrides.
func loadConfig() (Config, error) {
	cfg, err := readConfigFile()
	if err != nil {
		return Config{}, err
	}

	if v := os.Getenv("ST_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("ST_REGION"); v != "" {
		cfg.Region = v
	}
	if v := os.Getenv("ST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ST_LOG_JSON"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("ST_LOG_JSON: %w", err)
		}
		cfg.LogJSON = b
	}
	if v := os.Getenv("ST_REMIND_SCHEDULE"); v != "" {
		cfg.RemindSchedule = v
	}

	return cfg, nil
}

// dbPath resolves the database path: --db flag, then config/env, then the
// default location.
func dbPath(cfg Config) (string, error) {
	if flagDB != "" {
		return flagDB, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return db.DefaultPath()
}

// region returns the configured phone region or the default.
func region(cfg Config) string {
	if cfg.Region != "" {
		return cfg.Region
	}
	return client.DefaultRegion
}
