// internal/notify/notifier.go

// Package notify delivers formatted messages to the single known recipient.
// Delivery is best effort: failures are logged and retried, never surfaced
// to callers.
package notify

import (
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/user/studiobot/internal/types"
)

const maxMessageLength = 4096

// API is the slice of the bot client the notifier needs. *tgbotapi.BotAPI
// satisfies it directly.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Notifier sends HTML-formatted messages, optionally with inline action
// buttons, to a fixed chat.
type Notifier struct {
	api    API
	chatID int64
	retry  *RetryPolicy
}

var _ types.Notifier = (*Notifier)(nil)

// New creates a Notifier for the given chat.
func New(api API, chatID int64) *Notifier {
	return &Notifier{api: api, chatID: chatID, retry: DefaultRetryPolicy()}
}

// Send delivers a plain formatted message.
func (n *Notifier) Send(text string) {
	n.send(text, nil)
}

// SendWithActions delivers a message with one inline button per action row.
func (n *Notifier) SendWithActions(text string, actions []types.Action) {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(actions))
	for _, a := range actions {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(a.Label, a.Data),
		))
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	n.send(text, &markup)
}

// AckCallback answers a button-press callback with a short toast text.
func (n *Notifier) AckCallback(callbackID, text string) {
	cb := tgbotapi.NewCallback(callbackID, text)
	if _, err := n.api.Request(cb); err != nil {
		slog.Warn("answer callback failed", "error", err)
	}
}

func (n *Notifier) send(text string, markup *tgbotapi.InlineKeyboardMarkup) {
	parts := splitMessage(text)
	for i, part := range parts {
		last := i == len(parts)-1
		err := n.retry.Execute(func() error {
			msg := tgbotapi.NewMessage(n.chatID, part)
			msg.ParseMode = tgbotapi.ModeHTML
			if markup != nil && last {
				msg.ReplyMarkup = *markup
			}
			if _, err := n.api.Send(msg); err != nil {
				// Retry without HTML if the markup is what the API rejected.
				msg.ParseMode = ""
				if _, err2 := n.api.Send(msg); err2 != nil {
					return err2
				}
			}
			return nil
		})
		if err != nil {
			slog.Error("send message failed", "error", err)
		}
	}
}

func splitMessage(text string) []string {
	if len(text) <= maxMessageLength {
		return []string{text}
	}
	var parts []string
	for len(text) > 0 {
		end := maxMessageLength
		if end > len(text) {
			end = len(text)
		}
		parts = append(parts, text[:end])
		text = text[end:]
	}
	return parts
}
