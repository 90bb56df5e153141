package main

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
}

func (n *fakeNotifier) Send(text string) { n.sent = append(n.sent, text) }

func (n *fakeNotifier) SendWithActions(text string, actions []types.Action) {
	n.sent = append(n.sent, text)
}

func (n *fakeNotifier) AckCallback(id, text string) {}

func TestConfirmDownload_UnknownIDIsNotAFailure(t *testing.T) {
	dir := t.TempDir()
	notifier := &fakeNotifier{}
	mgr := downloads.NewManager(state.NewPendingStore(filepath.Join(dir, "pending_downloads.json")), notifier)

	if err := confirmDownload(mgr, "download_missing"); err != nil {
		t.Fatalf("unknown id must be a handled outcome, got %v", err)
	}
	if len(notifier.sent) != 1 || !strings.Contains(notifier.sent[0], "Invalid ID") {
		t.Errorf("expected not-found guidance in chat, got %v", notifier.sent)
	}
}

func TestConfirmDownload_KnownID(t *testing.T) {
	dir := t.TempDir()
	notifier := &fakeNotifier{}
	store := state.NewPendingStore(filepath.Join(dir, "pending_downloads.json"))
	mgr := downloads.NewManager(store, notifier)

	path := filepath.Join(dir, "video.mp4")
	if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := store.Add("download_1", &types.PendingArtifact{
		Title:     "Video",
		CreatedAt: time.Now(),
		FilePath:  path,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := confirmDownload(mgr, "download_1"); err != nil {
		t.Fatal(err)
	}
	m, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 0 {
		t.Errorf("expected entry removed, got %v", m)
	}
}
