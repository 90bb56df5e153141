// internal/telegram/client.go

// Package telegram holds the thin pieces that talk to the Telegram Bot API
// directly: authentication and document content retrieval. Polling and
// sending live behind the feed and notify packages.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/user/studiobot/internal/types"
)

// Connect authenticates the bot with the given token.
func Connect(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	return bot, nil
}

// Fetcher retrieves uploaded document content: it resolves a temporary
// download locator for the file and fetches the raw text.
type Fetcher struct {
	bot  *tgbotapi.BotAPI
	http *http.Client
}

var _ types.ContentFetcher = (*Fetcher)(nil)

// NewFetcher creates a Fetcher over an authenticated bot.
func NewFetcher(bot *tgbotapi.BotAPI) *Fetcher {
	return &Fetcher{
		bot:  bot,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchDocument resolves fileID to a download URL and returns the content
// verbatim.
func (f *Fetcher) FetchDocument(ctx context.Context, fileID string) (string, error) {
	file, err := f.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("resolve file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(f.bot.Token), nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download file: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read file content: %w", err)
	}
	return string(data), nil
}
