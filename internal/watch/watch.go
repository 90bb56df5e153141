// internal/watch/watch.go

// Package watch runs the long-lived listener: it drains the update feed,
// routes operator commands to the pending-artifact store, and sweeps expired
// artifacts on a cron schedule.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/user/studiobot/internal/commands"
	"github.com/user/studiobot/internal/downloads"
	"github.com/user/studiobot/internal/types"
)

// Watcher couples the poll loop with the scheduled expiry sweep.
type Watcher struct {
	feed     types.Feed
	router   *commands.Router
	manager  *downloads.Manager
	expiry   time.Duration
	schedule string
	pollWait time.Duration
}

// New creates a Watcher. schedule is a cron expression for the expired
// sweep, e.g. "@hourly".
func New(feed types.Feed, router *commands.Router, manager *downloads.Manager,
	expiry time.Duration, schedule string) *Watcher {
	return &Watcher{
		feed:     feed,
		router:   router,
		manager:  manager,
		expiry:   expiry,
		schedule: schedule,
		pollWait: 30 * time.Second,
	}
}

// SetPollWait overrides the long-poll wait budget. Used by tests.
func (w *Watcher) SetPollWait(d time.Duration) {
	w.pollWait = d
}

// Run blocks until ctx is cancelled, polling for commands and firing the
// expiry sweep on schedule.
func (w *Watcher) Run(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(w.schedule, func() {
		slog.Info("expiry sweep firing", "threshold", w.expiry)
		if _, err := w.manager.CleanupExpired(w.expiry); err != nil {
			slog.Error("expiry sweep failed", "error", err)
		}
	}); err != nil {
		return err
	}
	c.Start()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		c.Stop()
		return ctx.Err()
	})

	g.Go(func() error {
		cursor := w.feed.InitCursor()
		slog.Info("watch started", "cursor", cursor, "sweep_schedule", w.schedule)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			events, next := w.feed.Poll(cursor, w.pollWait)
			cursor = next
			for _, ev := range events {
				w.router.HandleEvent(ev)
			}
		}
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
