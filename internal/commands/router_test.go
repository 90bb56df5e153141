// internal/commands/router_test.go
package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/studiobot/internal/downloads"
	"github.com/user/studiobot/internal/state"
	"github.com/user/studiobot/internal/types"
)

type fakeNotifier struct {
	sent []string
	acks []string
}

func (n *fakeNotifier) Send(text string) { n.sent = append(n.sent, text) }

func (n *fakeNotifier) SendWithActions(text string, actions []types.Action) {
	n.sent = append(n.sent, text)
}

func (n *fakeNotifier) AckCallback(id, text string) {
	n.acks = append(n.acks, id+"|"+text)
}

func (n *fakeNotifier) last() string {
	if len(n.sent) == 0 {
		return ""
	}
	return n.sent[len(n.sent)-1]
}

func newTestRouter(t *testing.T) (*Router, *state.PendingStore, *fakeNotifier, string) {
	t.Helper()
	dir := t.TempDir()
	store := state.NewPendingStore(filepath.Join(dir, "pending_downloads.json"))
	notifier := &fakeNotifier{}
	manager := downloads.NewManager(store, notifier)
	return NewRouter(manager, notifier, downloads.DefaultExpiry), store, notifier, dir
}

func text(s string) types.InboundEvent {
	return types.InboundEvent{Kind: types.EventText, Text: s}
}

func callback(data string) types.InboundEvent {
	return types.InboundEvent{
		Kind:     types.EventCallback,
		Callback: &types.Callback{ID: "cb-1", Data: data},
	}
}

func seed(t *testing.T, store *state.PendingStore, dir string, id types.ArtifactID, age time.Duration, confirmed bool) {
	t.Helper()
	path := filepath.Join(dir, string(id)+".mp4")
	if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := store.Add(id, &types.PendingArtifact{
		Title:     "Video",
		CreatedAt: time.Now().Add(-age),
		Confirmed: confirmed,
		FilePath:  path,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestRouter_DownloadsCommand(t *testing.T) {
	router, store, notifier, dir := newTestRouter(t)
	seed(t, store, dir, "download_1", time.Hour, false)

	router.HandleEvent(text("/downloads"))
	if !strings.Contains(notifier.last(), "download_1") {
		t.Errorf("expected listing, got %q", notifier.last())
	}

	// /list is an alias.
	router.HandleEvent(text("/list"))
	if !strings.Contains(notifier.last(), "download_1") {
		t.Errorf("expected listing via alias, got %q", notifier.last())
	}
}

func TestRouter_ConfirmArity(t *testing.T) {
	router, _, notifier, _ := newTestRouter(t)

	router.HandleEvent(text("/confirm"))
	if !strings.Contains(notifier.last(), "Correct usage") {
		t.Errorf("expected usage message, got %q", notifier.last())
	}

	router.HandleEvent(text("/confirm a b"))
	if !strings.Contains(notifier.last(), "Correct usage") {
		t.Errorf("expected usage message for extra args, got %q", notifier.last())
	}
}

func TestRouter_ConfirmCommand(t *testing.T) {
	router, store, notifier, dir := newTestRouter(t)
	seed(t, store, dir, "download_1", time.Hour, false)

	router.HandleEvent(text("/confirm download_1"))
	if !strings.Contains(notifier.last(), "Download Confirmed") {
		t.Errorf("expected confirmation, got %q", notifier.last())
	}

	router.HandleEvent(text("/confirm download_1"))
	if !strings.Contains(notifier.last(), "Invalid ID") {
		t.Errorf("expected invalid-ID message on re-confirm, got %q", notifier.last())
	}
}

func TestRouter_CleanupAndHelp(t *testing.T) {
	router, store, notifier, dir := newTestRouter(t)
	seed(t, store, dir, "download_1", time.Hour, true)

	router.HandleEvent(text("/cleanup"))
	if !strings.Contains(notifier.last(), "Cleanup Complete") {
		t.Errorf("expected cleanup report, got %q", notifier.last())
	}

	router.HandleEvent(text("/help"))
	if !strings.Contains(notifier.last(), "AVAILABLE COMMANDS") {
		t.Errorf("expected help text, got %q", notifier.last())
	}
}

func TestRouter_UnknownCommand(t *testing.T) {
	router, _, notifier, _ := newTestRouter(t)

	router.HandleEvent(text("/frobnicate"))
	if !strings.Contains(notifier.last(), "Unknown command") {
		t.Errorf("expected unknown-command message, got %q", notifier.last())
	}
}

func TestRouter_NonCommandTextIgnored(t *testing.T) {
	router, _, notifier, _ := newTestRouter(t)

	router.HandleEvent(text("hello there"))
	router.HandleEvent(text("   "))
	if len(notifier.sent) != 0 {
		t.Errorf("plain text must be ignored, got %v", notifier.sent)
	}
}

func TestRouter_ConfirmCallback(t *testing.T) {
	router, store, notifier, dir := newTestRouter(t)
	seed(t, store, dir, "download_1", time.Hour, false)

	router.HandleEvent(callback("confirm:download_1"))
	if len(notifier.acks) != 1 || !strings.Contains(notifier.acks[0], "Processing") {
		t.Errorf("expected processing ack, got %v", notifier.acks)
	}
	if !strings.Contains(notifier.last(), "Download Confirmed") {
		t.Errorf("expected confirmation, got %q", notifier.last())
	}
}

func TestRouter_CleanupCallbacks(t *testing.T) {
	router, store, notifier, dir := newTestRouter(t)
	seed(t, store, dir, "download_confirmed", time.Hour, true)
	seed(t, store, dir, "download_old", 25*time.Hour, false)

	router.HandleEvent(callback("cleanup_confirmed"))
	if !strings.Contains(notifier.last(), "Cleanup Complete") {
		t.Errorf("expected cleanup report, got %q", notifier.last())
	}

	router.HandleEvent(callback("cleanup_expired"))
	if !strings.Contains(notifier.last(), "Expired Cleanup") {
		t.Errorf("expected expired report, got %q", notifier.last())
	}

	m, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 0 {
		t.Errorf("expected empty mapping after both cleanups, got %v", m)
	}
}

func TestRouter_UnknownCallback(t *testing.T) {
	router, _, notifier, _ := newTestRouter(t)

	router.HandleEvent(callback("bogus"))
	if len(notifier.acks) != 1 || !strings.Contains(notifier.acks[0], "Unknown action") {
		t.Errorf("expected unknown-action ack, got %v", notifier.acks)
	}
	if len(notifier.sent) != 0 {
		t.Errorf("unknown callback must not send a message, got %v", notifier.sent)
	}
}
