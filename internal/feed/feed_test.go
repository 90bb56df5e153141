// internal/feed/feed_test.go
package feed

import (
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/user/studiobot/internal/types"
)

const chatID = int64(42)

// fakeSource returns scripted batches in order, then empty batches.
type fakeSource struct {
	batches [][]tgbotapi.Update
	err     error
	calls   []tgbotapi.UpdateConfig
}

func (f *fakeSource) GetUpdates(cfg tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	f.calls = append(f.calls, cfg)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.batches) == 0 {
		return nil, nil
	}
	b := f.batches[0]
	f.batches = f.batches[1:]
	return b, nil
}

func textUpdate(seq int, chat int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: seq,
		Message: &tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: chat},
			Text: text,
		},
	}
}

func TestFeed_PollAdvancesCursor(t *testing.T) {
	src := &fakeSource{batches: [][]tgbotapi.Update{
		{textUpdate(10, chatID, "hello"), textUpdate(11, chatID, "world")},
	}}
	f := New(src, chatID)

	events, next := f.Poll(10, time.Second)
	if next != 12 {
		t.Errorf("expected cursor 12, got %d", next)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != types.EventText || events[0].Text != "hello" {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[0].Seq != 10 || events[1].Seq != 11 {
		t.Error("sequence numbers not carried through")
	}

	// Nothing left: cursor must not move and no event below it reappears.
	events, next = f.Poll(next, time.Second)
	if next != 12 || len(events) != 0 {
		t.Errorf("expected unchanged cursor on empty batch, got %d with %d events", next, len(events))
	}
}

func TestFeed_TransportFailureKeepsCursor(t *testing.T) {
	src := &fakeSource{err: errors.New("connection reset")}
	f := New(src, chatID)
	f.SetRetryDelay(0)

	events, next := f.Poll(7, time.Second)
	if next != 7 {
		t.Errorf("expected unchanged cursor on failure, got %d", next)
	}
	if len(events) != 0 {
		t.Errorf("expected empty batch on failure, got %d", len(events))
	}
}

func TestFeed_OtherChatConsumedNotDelivered(t *testing.T) {
	src := &fakeSource{batches: [][]tgbotapi.Update{
		{textUpdate(5, 999, "intruder"), textUpdate(6, chatID, "mine")},
	}}
	f := New(src, chatID)

	events, next := f.Poll(5, time.Second)
	if next != 7 {
		t.Errorf("cursor must advance past foreign events, got %d", next)
	}
	if len(events) != 1 || events[0].Text != "mine" {
		t.Fatalf("expected only own-chat event, got %+v", events)
	}
}

func TestFeed_ConvertDocument(t *testing.T) {
	up := tgbotapi.Update{
		UpdateID: 3,
		Message: &tgbotapi.Message{
			Chat:     &tgbotapi.Chat{ID: chatID},
			Document: &tgbotapi.Document{FileID: "f1", FileName: "script.txt"},
		},
	}
	src := &fakeSource{batches: [][]tgbotapi.Update{{up}}}
	f := New(src, chatID)

	events, _ := f.Poll(3, time.Second)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Kind != types.EventDocument || ev.Document == nil {
		t.Fatalf("expected document event, got %+v", ev)
	}
	if ev.Document.FileID != "f1" || ev.Document.FileName != "script.txt" {
		t.Errorf("document fields mismatch: %+v", ev.Document)
	}
}

func TestFeed_ConvertCallback(t *testing.T) {
	up := tgbotapi.Update{
		UpdateID: 4,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb1",
			Data:    "cleanup_confirmed",
			Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
		},
	}
	src := &fakeSource{batches: [][]tgbotapi.Update{{up}}}
	f := New(src, chatID)

	events, next := f.Poll(4, time.Second)
	if next != 5 {
		t.Errorf("expected cursor 5, got %d", next)
	}
	if len(events) != 1 || events[0].Kind != types.EventCallback {
		t.Fatalf("expected callback event, got %+v", events)
	}
	if events[0].Callback.ID != "cb1" || events[0].Callback.Data != "cleanup_confirmed" {
		t.Errorf("callback fields mismatch: %+v", events[0].Callback)
	}
}

func TestFeed_UnattributableCallbackConsumedNotDelivered(t *testing.T) {
	src := &fakeSource{batches: [][]tgbotapi.Update{{
		{
			UpdateID: 8,
			CallbackQuery: &tgbotapi.CallbackQuery{
				ID:   "cb-foreign",
				Data: "cleanup_confirmed",
				// no originating message: chat cannot be verified
			},
		},
		{
			UpdateID: 9,
			CallbackQuery: &tgbotapi.CallbackQuery{
				ID:      "cb-other",
				Data:    "cleanup_confirmed",
				Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 999}},
			},
		},
	}}}
	f := New(src, chatID)

	events, next := f.Poll(8, time.Second)
	if next != 10 {
		t.Errorf("cursor must advance past dropped callbacks, got %d", next)
	}
	if len(events) != 0 {
		t.Fatalf("expected no delivered events, got %+v", events)
	}
}

func TestFeed_InitCursor(t *testing.T) {
	src := &fakeSource{batches: [][]tgbotapi.Update{
		{textUpdate(99, chatID, "stale")},
	}}
	f := New(src, chatID)

	if got := f.InitCursor(); got != 100 {
		t.Errorf("expected cursor 100, got %d", got)
	}
	if src.calls[0].Offset != -1 {
		t.Errorf("expected offset -1 probe, got %d", src.calls[0].Offset)
	}
}

func TestFeed_InitCursorFailure(t *testing.T) {
	src := &fakeSource{err: errors.New("timeout")}
	f := New(src, chatID)

	if got := f.InitCursor(); got != 0 {
		t.Errorf("expected cursor 0 on failure, got %d", got)
	}
}
