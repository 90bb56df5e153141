package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/studiobot/internal/downloads"
	"github.com/user/studiobot/internal/state"
	"github.com/user/studiobot/internal/types"
)

func init() {
	rootCmd.AddCommand(downloadsCmd)
	downloadsCmd.AddCommand(downloadsListCmd, downloadsConfirmCmd, downloadsCleanupCmd, downloadsExpiredCmd)

	downloadsExpiredCmd.Flags().Int("hours", 24, "expiry threshold in hours")
}

// downloadManager wires a Manager that reports to the chat, matching what
// the inbound /downloads commands do.
func downloadManager() (*downloads.Manager, error) {
	cfg := loadConfig()
	setupLogging(cfg)

	_, _, notifier, err := buildChat(cfg)
	if err != nil {
		return nil, err
	}
	return downloads.NewManager(state.NewPendingStore(cfg.PendingPath()), notifier), nil
}

var downloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "Manage pending artifact downloads",
}

var downloadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending downloads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := downloadManager()
		if err != nil {
			return err
		}
		return mgr.List()
	},
}

var downloadsConfirmCmd = &cobra.Command{
	Use:   "confirm <id>",
	Short: "Confirm a download and remove the artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := downloadManager()
		if err != nil {
			return err
		}
		return confirmDownload(mgr, types.ArtifactID(args[0]))
	},
}

// confirmDownload runs a confirm for the CLI. An unknown ID has already been
// reported to the operator by the manager; it is a handled outcome, not a
// process failure.
func confirmDownload(mgr *downloads.Manager, id types.ArtifactID) error {
	err := mgr.Confirm(id)
	if errors.Is(err, downloads.ErrNotFound) {
		return nil
	}
	return err
}

var downloadsCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove confirmed downloads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := downloadManager()
		if err != nil {
			return err
		}
		_, err = mgr.CleanupConfirmed()
		return err
	},
}

var downloadsExpiredCmd = &cobra.Command{
	Use:   "expired",
	Short: "Remove unconfirmed downloads past the expiry threshold",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, _ := cmd.Flags().GetInt("hours")
		mgr, err := downloadManager()
		if err != nil {
			return err
		}
		_, err = mgr.CleanupExpired(time.Duration(hours) * time.Hour)
		return err
	},
}
