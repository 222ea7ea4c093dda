// Package watch re-resolves the site configuration whenever its files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// DefaultDebounce is the quiet period after the last file event before a reload.
const DefaultDebounce = 500 * time.Millisecond

// LoadFunc loads and resolves the configuration.
type LoadFunc func() (*nav.SiteConfig, error)

// ChangeFunc receives the outcome of every reload.
type ChangeFunc func(cfg *nav.SiteConfig, err error)

// Watcher monitors a set of configuration files and triggers reloads.
type Watcher struct {
	files    map[string]struct{} // absolute paths
	load     LoadFunc
	onChange ChangeFunc
	debounce time.Duration
	logger   *slog.Logger

	watcher    *fsnotify.Watcher
	mu         sync.Mutex
	stopChan   chan struct{}
	reloadChan chan struct{}
	wg         sync.WaitGroup
	stopped    bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger; slog.Default is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a watcher for paths. load runs on every debounced change and
// its result is handed to onChange.
func New(paths []string, load LoadFunc, onChange ChangeFunc, opts ...Option) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	files := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", p, err)
		}
		files[abs] = struct{}{}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		files:      files,
		load:       load,
		onChange:   onChange,
		debounce:   DefaultDebounce,
		logger:     slog.Default(),
		watcher:    fw,
		stopChan:   make(chan struct{}),
		reloadChan: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start watches the directories holding the files (more reliable than the
// files themselves, since editors replace files on save) until ctx is done or
// Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	dirs := make(map[string]struct{})
	for f := range w.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for d := range dirs {
		if err := w.watcher.Add(d); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", d, err)
		}
	}

	w.logger.Info("Watching configuration", slog.Int("files", len(w.files)))

	w.wg.Add(2)
	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

// Stop ends watching and waits for the loops to exit. It is safe to call
// more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.stopChan)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if _, tracked := w.files[filepath.Clean(event.Name)]; !tracked {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				w.logger.Debug("Config file changed", logfields.File(event.Name), slog.String("op", event.Op.String()))
				w.triggerReload()
			case event.Has(fsnotify.Remove):
				w.logger.Warn("Config file removed", logfields.File(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Config watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	defer w.wg.Done()
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.reloadChan:
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

// triggerReload requests a debounced reload without blocking.
func (w *Watcher) triggerReload() {
	select {
	case w.reloadChan <- struct{}{}:
	default:
	}
}

func (w *Watcher) reload() {
	start := time.Now()
	cfg, err := w.load()
	ms := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		w.logger.Error("Configuration reload failed", logfields.Error(err), logfields.DurationMS(ms))
	} else {
		w.logger.Info("Configuration reloaded", logfields.Title(cfg.Title()), logfields.Entries(len(nav.Flatten(cfg))), logfields.DurationMS(ms))
	}
	w.onChange(cfg, err)
}
