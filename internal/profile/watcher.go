package profile

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"termfolio/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Watcher keeps the latest valid profile loaded from a YAML file.
// It watches the file's directory so editors that save by rename are seen.
// An invalid edit is logged and the previous profile stays current.
type Watcher struct {
	path     string
	current  atomic.Pointer[Profile]
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(*Profile)

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher loads path once and prepares a watcher for it.
// onChange (optional) is called from the watcher goroutine after each reload.
func NewWatcher(path string, onChange func(*Profile)) (*Watcher, error) {
	p, err := Load(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     filepath.Clean(path),
		watcher:  fw,
		debounce: 200 * time.Millisecond,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	w.current.Store(p)
	return w, nil
}

// Current returns the most recently loaded valid profile.
func (w *Watcher) Current() *Profile {
	return w.current.Load()
}

// Start begins watching. It is non-blocking; Stop or ctx cancellation ends it.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	logging.Watcher("watching profile %s", w.path)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.WatcherError("error closing watcher: %v", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Editors emit bursts of events per save.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.WatcherError("watch error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	p, err := Load(w.path)
	if err != nil {
		logging.WatcherError("keeping previous profile: %v", err)
		return
	}
	w.current.Store(p)
	logging.Watcher("profile reloaded (%d projects)", len(p.Projects))
	if w.onChange != nil {
		w.onChange(p)
	}
}
