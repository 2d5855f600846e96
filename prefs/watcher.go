package prefs

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher observes the preference file for writes by other processes
// and reloads the store when one lands. It has an explicit Start/Stop
// lifecycle so setup and teardown stay deterministic; nothing here is
// an ambient global listener.
type Watcher struct {
	store    *Store
	log      *zap.Logger
	onChange func(Data)

	fsw  *fsnotify.Watcher
	done chan struct{}
}

// NewWatcher builds a watcher for the store's file. onChange is called
// with the freshly reloaded data after every external write; it runs
// on the watcher's goroutine, so UI callers must hop threads
// themselves.
func NewWatcher(store *Store, log *zap.Logger, onChange func(Data)) *Watcher {
	return &Watcher{store: store, log: log, onChange: onChange}
}

// Start begins watching. The parent directory is watched rather than
// the file itself so atomic replaces (write to temp, rename over) are
// still observed.
func (w *Watcher) Start() error {
	if w.fsw != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.store.Path())); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.store.Path()), err)
	}

	w.fsw = fsw
	w.done = make(chan struct{})
	go w.run()
	return nil
}

// Stop ends watching and releases the underlying watcher. It is safe
// to call on a watcher that never started.
func (w *Watcher) Stop() {
	if w.fsw == nil {
		return
	}
	w.fsw.Close()
	<-w.done
	w.fsw = nil
}

func (w *Watcher) run() {
	defer close(w.done)
	name := filepath.Base(w.store.Path())

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.store.Reload(); err != nil {
				w.log.Warn("preference reload failed", zap.Error(err))
				continue
			}
			if w.onChange != nil {
				w.onChange(w.store.Snapshot())
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("preference watcher error", zap.Error(err))
		}
	}
}
