package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/studiobot/internal/conversation"
	"github.com/user/studiobot/internal/state"
	"github.com/user/studiobot/internal/telegram"
)

func init() {
	rootCmd.AddCommand(collectCmd)
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run the intake conversation and store a production record",
	Args:  cobra.NoArgs,
	RunE:  runCollect,
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	bot, fd, notifier, err := buildChat(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	engine := conversation.New(
		fd,
		notifier,
		telegram.NewFetcher(bot),
		state.NewProductionStore(cfg.DataDir),
		state.NewMarkerStore(cfg.MarkerPath()),
		conversation.Options{StepPause: 2 * time.Second},
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcome, rec, err := engine.Run(ctx)
	switch outcome {
	case conversation.OutcomeCompleted:
		fmt.Fprintf(os.Stdout, "Collected: %s (%d words, %.1f min)\n",
			rec.Title, rec.WordCount, rec.EstimatedDuration)
		return nil

	case conversation.OutcomeTimedOut:
		// Handled gracefully: the operator was notified and no record exists.
		slog.Warn("intake abandoned, no reply before timeout")
		return nil

	case conversation.OutcomeCancelled:
		slog.Info("intake cancelled by operator")
		os.Exit(2)
		return nil

	default:
		notifier.Send(fmt.Sprintf(
			"❌ <b>Production Error</b>\n\nSomething went wrong:\n\n<code>%v</code>", err))
		return fmt.Errorf("intake failed: %w", err)
	}
}
