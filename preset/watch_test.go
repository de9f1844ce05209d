package preset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(path, []byte("width = 64\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	files := make(chan *File, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(f *File, err error) {
			if err != nil {
				return
			}
			select {
			case files <- f:
			default:
			}
		})
	}()

	// The watcher starts asynchronously, so keep rewriting until a reload
	// carries the new width.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	data := []byte("width = 128\nheight = 32\n")
wait:
	for {
		select {
		case f := <-files:
			if f.Width == 128 && f.Height == 32 {
				break wait
			}
		case <-tick.C:
			if err := os.WriteFile(path, data, 0o600); err != nil {
				t.Fatal(err)
			}
		case err := <-done:
			t.Fatalf("Watch returned early: %v", err)
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Watch err = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchRejectsUnknownFormat(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "scene.json"), func(*File, error) {})
	if !errors.Is(err, ErrFormat) {
		t.Errorf("err = %v, want ErrFormat", err)
	}
}
