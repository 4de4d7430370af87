package wordbank

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads the word list at path into the bank whenever it is written
// or replaced, until ctx is done. Reloading adds and updates entries; words
// removed from the file stay in the bank.
//
// The parent directory is watched rather than the file so that editors which
// save through a rename are picked up.
func (b *Bank) Watch(ctx context.Context, path string, logger *log.Logger) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve word list path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !reloadEvent(event, abs) {
				continue
			}
			n, rejected, err := b.LoadInto(abs)
			if err != nil {
				logger.Warn("word list reload failed", "path", abs, "err", err)
				continue
			}
			logger.Info("word list reloaded", "path", abs, "loaded", n, "rejected", len(rejected), "size", b.Len())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "err", err)
		}
	}
}

func reloadEvent(event fsnotify.Event, path string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
