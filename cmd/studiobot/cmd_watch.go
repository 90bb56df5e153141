package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/studiobot/internal/commands"
	"github.com/user/studiobot/internal/downloads"
	"github.com/user/studiobot/internal/state"
	"github.com/user/studiobot/internal/watch"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Listen for download commands and sweep expired artifacts",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	_, fd, notifier, err := buildChat(cfg)
	if err != nil {
		return err
	}

	expiry := time.Duration(cfg.ExpireHours) * time.Hour
	manager := downloads.NewManager(state.NewPendingStore(cfg.PendingPath()), notifier)
	router := commands.NewRouter(manager, notifier, expiry)
	watcher := watch.New(fd, router, manager, expiry, cfg.SweepSchedule)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return watcher.Run(ctx)
}
