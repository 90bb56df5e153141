// internal/config/config.go

// Package config loads the studiobot configuration: a JSON file with
// defaults written on first run, overridden by environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	DataDir       string `json:"data_dir"`
	LogLevel      string `json:"log_level"`
	ExpireHours   int    `json:"expire_hours"`
	SweepSchedule string `json:"sweep_schedule"`
	Telegram      struct {
		Token  string `json:"token"`
		ChatID int64  `json:"chat_id"`
	} `json:"telegram"`
}

// Load reads the config at path, writing defaults first if the file doesn't
// exist. Environment variables take highest precedence.
func Load(path string) (*Config, error) {
	cfg := &Config{
		DataDir:       "productions",
		LogLevel:      "info",
		ExpireHours:   24,
		SweepSchedule: "@hourly",
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		if err := writeDefaults(path, cfg); err != nil {
			return nil, err
		}
	}

	// Override from env (highest precedence)
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.Telegram.Token = token
	}
	if chat := os.Getenv("TELEGRAM_CHAT_ID"); chat != "" {
		id, err := strconv.ParseInt(chat, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.Telegram.ChatID = id
	}
	if dir := os.Getenv("STUDIOBOT_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}

	return cfg, nil
}

// Validate reports missing required credentials. The chat channel cannot
// carry this error since it is unauthenticated without the token.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is not configured")
	}
	if c.Telegram.ChatID == 0 {
		return errors.New("TELEGRAM_CHAT_ID is not configured")
	}
	return nil
}

// PendingPath returns the pending-artifacts mapping file location.
func (c *Config) PendingPath() string {
	return filepath.Join(c.DataDir, "pending_downloads.json")
}

// MarkerPath returns the cancel-marker file location.
func (c *Config) MarkerPath() string {
	return filepath.Join(c.DataDir, "cancel_flag.json")
}

func writeDefaults(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	data = append(data, '\n')
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename default config: %w", err)
	}
	return nil
}
