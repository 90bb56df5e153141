// internal/conversation/script.go
package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/user/studiobot/internal/types"
)

// finishSentinels end fragment collection. Matched case-insensitively.
var finishSentinels = []string{"pronto", "done", "fim", "finish"}

func isFinishSentinel(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, s := range finishSentinels {
		if text == s {
			return true
		}
	}
	return false
}

// collectScript gathers the narration script. Two input modes: repeated text
// fragments terminated by a finish sentinel, or a single .txt document whose
// content is used verbatim. A document replaces any fragments collected so
// far. On timeout, fragments already collected are kept as the script.
func (e *Engine) collectScript(ctx context.Context, timeout time.Duration) (string, Outcome) {
	e.notifier.Send(msgScriptPrompt)

	var parts []string
	start := time.Now()
	lastCancelCheck := time.Duration(0)

	for {
		if ctx.Err() != nil {
			return "", OutcomeFailed
		}
		elapsed := time.Since(start)
		remaining := timeout - elapsed
		if remaining <= 0 {
			break
		}

		if elapsed-lastCancelCheck >= e.opts.CancelEvery {
			cancelled, next := e.watch.CheckOnce(e.cursor)
			e.cursor = next
			if cancelled {
				return "", OutcomeCancelled
			}
			lastCancelCheck = elapsed
		}

		events, next := e.feed.Poll(e.cursor, minDuration(e.opts.PollWait, remaining))
		e.cursor = next

		for _, ev := range events {
			switch ev.Kind {
			case types.EventDocument:
				if !strings.HasSuffix(ev.Document.FileName, ".txt") {
					continue
				}
				slog.Info("script document received", "file", ev.Document.FileName)
				e.notifier.Send(msgDocumentReceived)

				content, err := e.fetcher.FetchDocument(ctx, ev.Document.FileID)
				if err != nil {
					slog.Error("fetch script document failed", "error", err)
					e.notifier.Send(msgDocumentError)
					continue
				}
				if len(parts) > 0 {
					e.notifier.Send(fmt.Sprintf(msgDocumentReplaces, len(parts)))
				}
				return content, OutcomeCompleted

			case types.EventText:
				text := strings.TrimSpace(ev.Text)
				if text == "" {
					continue
				}
				if IsCancelDirective(text) {
					e.watch.Trigger("operator requested cancellation")
					return "", OutcomeCancelled
				}
				if isFinishSentinel(text) {
					if len(parts) == 0 {
						e.notifier.Send(msgScriptEmpty)
						continue
					}
					return strings.Join(parts, "\n"), OutcomeCompleted
				}

				parts = append(parts, text)
				words := 0
				for _, p := range parts {
					words += len(strings.Fields(p))
				}
				e.notifier.Send(fmt.Sprintf(msgScriptPartAck, len(parts), words))
			}
		}
	}

	// Timed out with fragments in hand: use what we have.
	if len(parts) > 0 {
		return strings.Join(parts, "\n"), OutcomeCompleted
	}
	return "", OutcomeTimedOut
}
