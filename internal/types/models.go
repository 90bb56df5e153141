// internal/types/models.go
package types

import "time"

// EventKind discriminates the payload carried by an InboundEvent.
type EventKind string

const (
	EventText     EventKind = "text"
	EventDocument EventKind = "document"
	EventCallback EventKind = "callback"
)

// InboundEvent is one unit from the update feed. Exactly one payload is set,
// selected by Kind. Seq is the platform update sequence number; the feed
// cursor always advances past it once the event has been returned.
type InboundEvent struct {
	Seq      int64
	ChatID   int64
	Kind     EventKind
	Text     string       // EventText
	Document *DocumentRef // EventDocument
	Callback *Callback    // EventCallback
}

// DocumentRef identifies an uploaded document on the chat platform.
type DocumentRef struct {
	FileID   string
	FileName string
}

// Callback is a button-press payload together with the platform callback ID
// that must be acknowledged.
type Callback struct {
	ID   string
	Data string
}

// Action is one labeled button attached to an outbound message. Pressing it
// produces a Callback event carrying Data.
type Action struct {
	Label string
	Data  string
}

// ProductionRecord is the finished intake result handed to the production
// pipeline. Built once at the end of a successful conversation, immutable
// afterwards.
type ProductionRecord struct {
	ID                ProductionID `json:"video_id"`
	CreatedAt         time.Time    `json:"timestamp"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Tags              []string     `json:"tags"`
	Script            string       `json:"script"`
	Status            string       `json:"status"`
	WordCount         int          `json:"word_count"`
	EstimatedDuration float64      `json:"estimated_duration"` // minutes
}

// StatusCollected is the lifecycle status stamped on a freshly built record.
const StatusCollected = "collected"

// PendingArtifact is one produced file awaiting manual confirmation before
// deletion. Created by the production pipeline, mutated by confirm, removed
// by confirm, cleanup or expiry.
type PendingArtifact struct {
	Title       string     `json:"title"`
	SizeMB      float64    `json:"size_mb"`
	DownloadURL string     `json:"download_url"`
	CreatedAt   time.Time  `json:"timestamp"`
	Confirmed   bool       `json:"confirmed"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	FilePath    string     `json:"video_path"`
}

// CancelMarker is the durable process-wide cancellation flag. Written when
// the operator cancels, cleared at the start of each new conversation.
type CancelMarker struct {
	Cancelled bool      `json:"cancelled"`
	At        time.Time `json:"timestamp"`
	Reason    string    `json:"reason,omitempty"`
}
