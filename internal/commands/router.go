// internal/commands/router.go

// Package commands routes inbound chat commands and button callbacks onto
// the pending-artifact operations.
package commands

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/user/studiobot/internal/downloads"
	"github.com/user/studiobot/internal/types"
)

const (
	msgConfirmUsage = "❌ Correct usage: <code>/confirm VIDEO_ID</code>"

	msgHelp = "📚 <b>AVAILABLE COMMANDS</b>\n\n" +
		"<b>📥 Downloads:</b>\n" +
		"/downloads - List pending downloads\n" +
		"/confirm ID - Confirm a video download\n" +
		"/cleanup - Remove confirmed downloads\n" +
		"/help - Show this help\n\n" +
		"<b>💡 Examples:</b>\n" +
		"• <code>/downloads</code> - See the list\n" +
		"• <code>/confirm download_1737123456</code> - Confirm\n" +
		"• <code>/cleanup</code> - Clear confirmed\n\n" +
		"<b>⚙️ Automatic:</b>\n" +
		"Videos expire after 24h and are removed automatically."

	msgUnknownCommand = "Unknown command. Available: /downloads, /confirm, /cleanup, /help"
)

// Router maps the fixed command/callback grammar 1:1 onto the download
// manager operations. Malformed arity produces a usage message, not an error.
type Router struct {
	manager  *downloads.Manager
	notifier types.Notifier
	expiry   time.Duration
}

// NewRouter creates a Router using the given expiry threshold for the
// cleanup_expired action.
func NewRouter(manager *downloads.Manager, notifier types.Notifier, expiry time.Duration) *Router {
	return &Router{manager: manager, notifier: notifier, expiry: expiry}
}

// HandleEvent dispatches one inbound event. Non-command text is ignored;
// this surface only serves the artifact lifecycle.
func (r *Router) HandleEvent(ev types.InboundEvent) {
	switch ev.Kind {
	case types.EventText:
		text := strings.TrimSpace(ev.Text)
		if strings.HasPrefix(text, "/") {
			r.handleCommand(text)
		}
	case types.EventCallback:
		r.handleCallback(ev.Callback)
	}
}

func (r *Router) handleCommand(text string) {
	parts := strings.Fields(text)
	switch parts[0] {
	case "/downloads", "/list":
		r.run(r.manager.List())

	case "/confirm":
		if len(parts) != 2 {
			r.notifier.Send(msgConfirmUsage)
			return
		}
		r.run(r.manager.Confirm(types.ArtifactID(parts[1])))

	case "/cleanup":
		_, err := r.manager.CleanupConfirmed()
		r.run(err)

	case "/help":
		r.notifier.Send(msgHelp)

	default:
		r.notifier.Send(msgUnknownCommand)
	}
}

func (r *Router) handleCallback(cb *types.Callback) {
	switch {
	case strings.HasPrefix(cb.Data, "confirm:"):
		id := strings.SplitN(cb.Data, ":", 2)[1]
		r.notifier.AckCallback(cb.ID, "Processing... ⏳")
		r.run(r.manager.Confirm(types.ArtifactID(id)))

	case cb.Data == "cleanup_confirmed":
		r.notifier.AckCallback(cb.ID, "Cleaning... 🗑️")
		_, err := r.manager.CleanupConfirmed()
		r.run(err)

	case cb.Data == "cleanup_expired":
		r.notifier.AckCallback(cb.ID, "Removing expired... ⚠️")
		_, err := r.manager.CleanupExpired(r.expiry)
		r.run(err)

	default:
		r.notifier.AckCallback(cb.ID, "Unknown action")
	}
}

// run logs operation failures. The not-found outcome has already been
// reported to the operator by the manager; anything else is unexpected.
func (r *Router) run(err error) {
	if err != nil && !errors.Is(err, downloads.ErrNotFound) {
		slog.Error("command failed", "error", err)
	}
}
