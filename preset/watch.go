package preset

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/vfx"
)

// Watch calls fn with the freshly loaded preset every time the file at path
// is written or recreated, until ctx is done. Editors that save by rename
// are handled by watching the parent directory.
//
// fn runs on the watcher goroutine; a load error is passed to fn rather
// than stopping the watch.
func Watch(ctx context.Context, path string, fn func(*File, error)) error {
	if _, err := FormatOf(path); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("preset: watch: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("preset: watch: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("preset: watch: %w", err)
	}
	vfx.Logger().Info("preset: watching", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			vfx.Logger().Debug("preset: changed", "path", abs, "op", event.Op.String())
			fn(Load(abs))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			vfx.Logger().Warn("preset: watch error", "err", err)
		}
	}
}
