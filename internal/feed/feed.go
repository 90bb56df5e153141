// internal/feed/feed.go

// Package feed wraps the chat platform's long-poll update primitive behind
// an explicit-cursor interface.
package feed

import (
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/user/studiobot/internal/types"
)

// UpdateSource abstracts the raw long-poll call so tests can inject update
// batches. *tgbotapi.BotAPI satisfies it directly.
type UpdateSource interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

// Feed converts raw updates into InboundEvents for the configured chat.
// It holds no cursor state; callers pass the cursor in and take the next
// cursor back on every poll.
type Feed struct {
	src        UpdateSource
	chatID     int64
	retryDelay time.Duration
}

var _ types.Feed = (*Feed)(nil)

// New creates a Feed over src, delivering events for chatID only.
func New(src UpdateSource, chatID int64) *Feed {
	return &Feed{src: src, chatID: chatID, retryDelay: 3 * time.Second}
}

// SetRetryDelay overrides the pause taken after a failed poll. Used by tests.
func (f *Feed) SetRetryDelay(d time.Duration) {
	f.retryDelay = d
}

// InitCursor returns one past the most recent update, so events sent before
// this run are never replayed. On failure it returns 0 and the first poll
// starts from the oldest retained update.
func (f *Feed) InitCursor() int64 {
	updates, err := f.src.GetUpdates(tgbotapi.UpdateConfig{Offset: -1})
	if err != nil {
		slog.Warn("init cursor failed, starting from zero", "error", err)
		return 0
	}
	if len(updates) == 0 {
		return 0
	}
	return int64(updates[len(updates)-1].UpdateID) + 1
}

// Poll performs one bounded long-poll call. Events from other chats are
// consumed (the cursor advances past them) but not delivered, so no later
// caller sees them again. On transport failure Poll sleeps the retry delay
// and returns an empty batch with the unchanged cursor.
func (f *Feed) Poll(cursor int64, wait time.Duration) ([]types.InboundEvent, int64) {
	updates, err := f.src.GetUpdates(tgbotapi.UpdateConfig{
		Offset:  int(cursor),
		Timeout: int(wait.Seconds()),
	})
	if err != nil {
		slog.Warn("poll updates failed", "error", err)
		time.Sleep(f.retryDelay)
		return nil, cursor
	}

	next := cursor
	var events []types.InboundEvent
	for _, u := range updates {
		if seq := int64(u.UpdateID); seq >= next {
			next = seq + 1
		}
		ev, ok := f.convert(u)
		if ok {
			events = append(events, ev)
		}
	}
	return events, next
}

// convert maps one raw update onto the tagged event union. Updates that
// carry no recognized payload, or belong to another chat, are dropped.
func (f *Feed) convert(u tgbotapi.Update) (types.InboundEvent, bool) {
	ev := types.InboundEvent{Seq: int64(u.UpdateID)}

	if cb := u.CallbackQuery; cb != nil {
		// A callback without an originating message cannot be attributed to
		// the configured chat, so it is consumed but not delivered.
		if cb.Message == nil || cb.Message.Chat.ID != f.chatID {
			return ev, false
		}
		ev.ChatID = cb.Message.Chat.ID
		ev.Kind = types.EventCallback
		ev.Callback = &types.Callback{ID: cb.ID, Data: cb.Data}
		return ev, true
	}

	msg := u.Message
	if msg == nil || msg.Chat.ID != f.chatID {
		return ev, false
	}
	ev.ChatID = msg.Chat.ID

	if doc := msg.Document; doc != nil {
		ev.Kind = types.EventDocument
		ev.Document = &types.DocumentRef{FileID: doc.FileID, FileName: doc.FileName}
		return ev, true
	}
	if msg.Text != "" {
		ev.Kind = types.EventText
		ev.Text = msg.Text
		return ev, true
	}
	return ev, false
}
