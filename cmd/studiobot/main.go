package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/user/studiobot/internal/config"
	"github.com/user/studiobot/internal/feed"
	"github.com/user/studiobot/internal/notify"
	"github.com/user/studiobot/internal/telegram"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "studiobot",
	Short: "Telegram intake bot for the video production pipeline",
}

func init() {
	defaultPath := filepath.Join(os.Getenv("HOME"), ".studiobot", "config.json")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultPath, "config file path")
}

// loadConfig loads the config file or exits. Called by every subcommand.
func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// buildChat validates credentials and wires the transport pieces every
// subcommand shares.
func buildChat(cfg *config.Config) (*tgbotapi.BotAPI, *feed.Feed, *notify.Notifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}
	bot, err := telegram.Connect(cfg.Telegram.Token)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect telegram: %w", err)
	}
	return bot, feed.New(bot, cfg.Telegram.ChatID), notify.New(bot, cfg.Telegram.ChatID), nil
}

func main() {
	// A local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
