// internal/downloads/manager.go

// Package downloads manages the lifecycle of produced artifacts awaiting
// manual confirmation: list, confirm, and the two bulk cleanups. Every
// operation re-reads the durable mapping, mutates it, and rewrites it
// wholesale.
package downloads

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/user/studiobot/internal/state"
	"github.com/user/studiobot/internal/types"
)

// DefaultExpiry is how long an unconfirmed artifact is kept.
const DefaultExpiry = 24 * time.Hour

// ErrNotFound reports a confirm against an unknown artifact ID.
var ErrNotFound = errors.New("artifact not found")

// Report summarizes one bulk cleanup. Removed counts mapping entries taken
// out; FilesDeleted counts backing files that actually existed and were
// deleted. They differ when a file was already gone.
type Report struct {
	Removed      int
	FilesDeleted int
	Remaining    int
}

// Manager runs pending-artifact operations and reports outcomes to the chat.
type Manager struct {
	store    *state.PendingStore
	notifier types.Notifier
}

// NewManager creates a Manager over the given store.
func NewManager(store *state.PendingStore, notifier types.Notifier) *Manager {
	return &Manager{store: store, notifier: notifier}
}

// List renders every pending entry with its age and confirmation status,
// attaching the bulk-cleanup action buttons. An empty mapping renders a
// distinct nothing-pending message.
func (m *Manager) List() error {
	pending, err := m.store.Load()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		m.notifier.Send(msgNonePending)
		return nil
	}

	ids := make([]types.ArtifactID, 0, len(pending))
	for id := range pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var b strings.Builder
	fmt.Fprintf(&b, msgListHeader, len(pending))
	for _, id := range ids {
		entry := pending[id]
		age := time.Since(entry.CreatedAt)
		days := int(age.Hours()) / 24
		hours := int(age.Hours()) % 24

		icon, status := "⏳", "Waiting"
		if entry.Confirmed {
			icon, status = "✅", "Confirmed"
		}
		fmt.Fprintf(&b, msgListEntry,
			icon, entry.Title, id, entry.SizeMB, days, hours, status, entry.DownloadURL)
	}

	m.notifier.SendWithActions(b.String(), []types.Action{
		{Label: "🗑️ Clear Confirmed", Data: "cleanup_confirmed"},
		{Label: "⚠️ Clear Expired (>24h)", Data: "cleanup_expired"},
	})
	return nil
}

// Confirm marks one artifact confirmed, deletes its backing file best-effort,
// removes the entry, and reports the outcome. An unknown ID is a user-facing
// not-found outcome.
func (m *Manager) Confirm(id types.ArtifactID) error {
	var (
		entry       *types.PendingArtifact
		fileDeleted bool
		remaining   int
	)
	err := m.store.Mutate(func(pending map[types.ArtifactID]*types.PendingArtifact) error {
		e, ok := pending[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		now := time.Now()
		e.Confirmed = true
		e.ConfirmedAt = &now
		fileDeleted = deleteFile(e.FilePath)
		entry = e
		delete(pending, id)
		remaining = len(pending)
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		m.notifier.Send(fmt.Sprintf(msgInvalidID, id))
		return err
	}
	if err != nil {
		return err
	}

	if fileDeleted {
		m.notifier.Send(fmt.Sprintf(msgConfirmed, entry.Title, entry.SizeMB, remaining))
	} else {
		m.notifier.Send(fmt.Sprintf(msgConfirmedGone, remaining))
	}
	return nil
}

// CleanupConfirmed removes every confirmed entry, deleting backing files
// best-effort.
func (m *Manager) CleanupConfirmed() (Report, error) {
	var rep Report
	err := m.store.Mutate(func(pending map[types.ArtifactID]*types.PendingArtifact) error {
		for id, entry := range pending {
			if !entry.Confirmed {
				continue
			}
			if deleteFile(entry.FilePath) {
				rep.FilesDeleted++
			}
			delete(pending, id)
			rep.Removed++
		}
		rep.Remaining = len(pending)
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	m.notifier.Send(fmt.Sprintf(msgCleanupDone, rep.Removed, rep.FilesDeleted, rep.Remaining))
	return rep, nil
}

// CleanupExpired removes every unconfirmed entry strictly older than the
// threshold. An entry at exactly the boundary is retained.
func (m *Manager) CleanupExpired(threshold time.Duration) (Report, error) {
	var rep Report
	now := time.Now()
	err := m.store.Mutate(func(pending map[types.ArtifactID]*types.PendingArtifact) error {
		for id, entry := range pending {
			if entry.Confirmed || now.Sub(entry.CreatedAt) <= threshold {
				continue
			}
			if deleteFile(entry.FilePath) {
				rep.FilesDeleted++
			}
			delete(pending, id)
			rep.Removed++
		}
		rep.Remaining = len(pending)
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	hours := int(threshold.Hours())
	m.notifier.Send(fmt.Sprintf(msgExpiredDone, rep.Removed, hours, rep.FilesDeleted, rep.Remaining))
	return rep, nil
}

// deleteFile removes a backing file, reporting whether a file was actually
// deleted. A missing file is treated as already gone.
func deleteFile(path string) bool {
	if path == "" {
		return false
	}
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("delete artifact file failed", "path", path, "error", err)
		}
		return false
	}
	slog.Info("artifact file deleted", "path", path)
	return true
}
