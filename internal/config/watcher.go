package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"numfacts/internal/logging"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the config file when it changes on disk and delivers each
// valid reload on Updates. Invalid edits are logged and skipped.
type Watcher struct {
	path      string
	fsw       *fsnotify.Watcher
	debouncer *Debouncer
	updates   chan *Config
	logger    *zap.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for the config file at path.
// The parent directory is watched so atomic-rename saves are seen.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultReloadDebounce
	}
	return &Watcher{
		path:      filepath.Clean(path),
		fsw:       fsw,
		debouncer: NewDebouncer(debounce),
		updates:   make(chan *Config, 1),
		logger:    logging.Get(logging.CategoryConfig),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}, nil
}

// Updates delivers reloaded configs. Only the newest unread config is kept.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Start begins watching. It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.logger.Debug("watching config", zap.String("path", w.path))

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for cleanup. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.fsw.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.debouncer.Cancel()

	if err := w.fsw.Close(); err != nil {
		w.logger.Warn("error closing config watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.debouncer.Debounce(w.reload)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		w.logger.Warn("ignoring invalid config reload", zap.Error(err))
		return
	}
	w.logger.Info("config reloaded", zap.String("path", w.path))

	select {
	case w.updates <- cfg:
	default:
		select {
		case <-w.updates:
		default:
		}
		select {
		case w.updates <- cfg:
		default:
		}
	}
}
