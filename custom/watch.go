package custom

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 200 * time.Millisecond

// Watch reloads src whenever its file changes, until ctx is done. Bursts of
// writes are collapsed into one reload. A failed reload keeps the previous
// overrides. onReload, if set, runs after every reload attempt.
func Watch(ctx context.Context, src *FileSource, delay time.Duration, logger *slog.Logger, onReload func(error)) error {
	if logger == nil {
		logger = slog.Default()
	}
	if delay == 0 {
		delay = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// watch the directory, editors usually replace the file on save
	dir := filepath.Dir(src.Path())
	if err := w.Add(dir); err != nil {
		w.Close()
		return err
	}

	target := filepath.Clean(src.Path())
	debounced := debounce.New(delay)
	reload := func() {
		err := src.Reload()
		if err != nil {
			logger.Warn("Failed to reload overrides", slog.String("path", target), slog.String("error", err.Error()))
		} else {
			logger.Info("Reloaded overrides", slog.String("path", target), slog.Int("count", src.Len()))
		}
		if onReload != nil {
			onReload(err)
		}
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					debounced(reload)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("Overrides watcher error", slog.String("error", err.Error()))
			}
		}
	}()

	logger.Debug("Watching overrides", slog.String("path", target), slog.Duration("debounce", delay))
	return nil
}
