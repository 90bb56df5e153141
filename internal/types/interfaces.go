// internal/types/interfaces.go
package types

import (
	"context"
	"time"
)

// Feed wraps the long-poll update primitive. The cursor is owned by the
// caller and passed explicitly so the feed stays stateless and testable.
type Feed interface {
	// InitCursor returns one past the most recent update at startup, so
	// events from before this run are never replayed.
	InitCursor() int64

	// Poll performs one bounded long-poll call. On transport failure it
	// returns an empty batch and the unchanged cursor; otherwise the
	// returned cursor is max(event.Seq)+1 over the batch, or unchanged
	// when the batch is empty.
	Poll(cursor int64, wait time.Duration) ([]InboundEvent, int64)
}

// Notifier sends formatted messages to the single known recipient.
// Delivery is best effort: failures are logged, never returned.
type Notifier interface {
	Send(text string)
	SendWithActions(text string, actions []Action)
	AckCallback(callbackID, text string)
}

// ContentFetcher resolves an uploaded document reference and retrieves its
// raw text content.
type ContentFetcher interface {
	FetchDocument(ctx context.Context, fileID string) (string, error)
}
