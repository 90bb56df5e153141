// internal/conversation/cancel.go
package conversation

import (
	"log/slog"
	"strings"
	"time"

	"github.com/user/studiobot/internal/state"
	"github.com/user/studiobot/internal/types"
)

// cancelDirectives abort the in-progress conversation. Matched
// case-insensitively against trimmed inbound text.
var cancelDirectives = []string{"/cancel", "/cancelar", "cancel", "cancelar"}

// IsCancelDirective reports whether text is a recognized cancel directive.
func IsCancelDirective(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, d := range cancelDirectives {
		if text == d {
			return true
		}
	}
	return false
}

// Watch polls the update feed for a cancel directive between conversation
// waits. On match it persists the cancel marker and notifies the operator.
type Watch struct {
	feed     types.Feed
	marker   *state.MarkerStore
	notifier types.Notifier
}

// NewWatch creates a cancellation watch.
func NewWatch(feed types.Feed, marker *state.MarkerStore, notifier types.Notifier) *Watch {
	return &Watch{feed: feed, marker: marker, notifier: notifier}
}

// CheckOnce drains any pending events at zero wait, looking for a cancel
// directive. The cursor advances over every event in the batch, related or
// not, so nothing is processed twice by a later caller.
func (w *Watch) CheckOnce(cursor int64) (bool, int64) {
	events, next := w.feed.Poll(cursor, 0)

	cancelled := false
	for _, ev := range events {
		if ev.Kind == types.EventText && IsCancelDirective(ev.Text) {
			cancelled = true
		}
	}
	if cancelled {
		w.Trigger("operator requested cancellation")
	}
	return cancelled, next
}

// Trigger persists the cancel marker and tells the operator the production
// was cancelled.
func (w *Watch) Trigger(reason string) {
	if err := w.marker.Write(reason); err != nil {
		slog.Error("write cancel marker failed", "error", err)
	}
	slog.Info("production cancelled", "reason", reason, "at", time.Now().Format(time.RFC3339))
	w.notifier.Send(msgCancelled)
}
