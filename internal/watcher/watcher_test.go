package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/voitext/internal/logger"
)

func TestIsMediaFile(t *testing.T) {
	tests := map[string]bool{
		"talk.wav":     true,
		"talk.WEBM":    true,
		"clip.mp4":     true,
		"talk.yaml":    false,
		"caption.png":  false,
		"notes.txt":    false,
		"no-extension": false,
	}
	for path, want := range tests {
		if got := isMediaFile(path); got != want {
			t.Errorf("isMediaFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWatcherDispatchesMediaFiles(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	done := make(chan struct{}, 4)
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		handled = append(handled, filepath.Base(path))
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	w, err := New(dir, handler, logger.Discard(), 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()
	w.(*implWatcher).settleDelay = 0

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	// give the event loop a moment to start
	time.Sleep(50 * time.Millisecond)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "talk.wav"), []byte("x"), 0644)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	if err := <-errCh; err != context.Canceled {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 || handled[0] != "talk.wav" {
		t.Errorf("handled = %v, want [talk.wav]", handled)
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.Discard(), 1); err == nil {
		t.Error("New() should fail for a missing directory")
	}
}
