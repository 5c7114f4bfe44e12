// Package watch rebuilds the site when input files change. Events are
// debounced so editors that write a file several times in quick succession
// trigger one rebuild.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docrender/internal/logfields"
)

// Rebuild is invoked after each debounced change burst.
type Rebuild func(ctx context.Context) error

// Watcher monitors the input tree and triggers rebuilds.
type Watcher struct {
	inputDir string
	rebuild  Rebuild
	watcher  *fsnotify.Watcher
	trigger  chan struct{}
	debounce time.Duration
	mu       sync.Mutex
}

// New creates a watcher over inputDir. Call Run to start it.
func New(inputDir string, rebuild Rebuild) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	abs, err := filepath.Abs(inputDir)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("resolve input path: %w", err)
	}
	return &Watcher{
		inputDir: abs,
		rebuild:  rebuild,
		watcher:  fsw,
		trigger:  make(chan struct{}, 1),
		debounce: 2 * time.Second,
	}, nil
}

// Run watches until the context is canceled. An initial build runs before
// watching starts so the site is current from the first moment.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.addTree(w.inputDir); err != nil {
		return err
	}
	slog.Info("watching for input changes", logfields.Target(w.inputDir))

	if err := w.rebuild(ctx); err != nil {
		slog.Error("initial build failed", logfields.Error(err))
	}

	go w.rebuildLoop(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("file watcher error", logfields.Error(err))
		}
	}
}

// addTree registers the directory and all subdirectories. fsnotify watches
// are not recursive.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	// New directories need their own watch.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				slog.Warn("failed to watch new directory", logfields.Target(event.Name), logfields.Error(err))
			}
		}
	}
	slog.Debug("input change detected", logfields.Target(event.Name))
	select {
	case w.trigger <- struct{}{}:
	default:
		// Rebuild already pending.
	}
}

// rebuildLoop debounces triggers and runs rebuilds sequentially.
func (w *Watcher) rebuildLoop(ctx context.Context) {
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.trigger:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				w.mu.Lock()
				defer w.mu.Unlock()
				if ctx.Err() != nil {
					return
				}
				if err := w.rebuild(ctx); err != nil {
					slog.Error("rebuild failed", logfields.Error(err))
				}
			})
		}
	}
}
