package app

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events editors emit on save.
const watchDebounce = 100 * time.Millisecond

// ConfigWatcher reports changes to the config file. It watches the parent
// directory so atomic saves (write temp, rename over) are still seen.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// WatchConfig starts watching path.
func WatchConfig(path string, logger *slog.Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &ConfigWatcher{path: abs, watcher: w, logger: logger}, nil
}

// Path returns the watched file.
func (c *ConfigWatcher) Path() string { return c.path }

// Close stops the watcher. Pending Next commands return nil.
func (c *ConfigWatcher) Close() error { return c.watcher.Close() }

// Next returns a Cmd that blocks until the file changes, then yields a
// ConfigChangedEvent. Re-issue it after each event.
func (c *ConfigWatcher) Next() tea.Cmd {
	return func() tea.Msg {
		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		for {
			select {
			case ev, ok := <-c.watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != c.path {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				timer.Reset(watchDebounce)

			case <-timer.C:
				return ConfigChangedEvent{Path: c.path}

			case err, ok := <-c.watcher.Errors:
				if !ok {
					return nil
				}
				c.logger.Warn("config watcher error", "error", err)
			}
		}
	}
}
