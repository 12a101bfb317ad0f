package layout

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent reports that the watched layout file was rewritten and
// reloaded successfully.
type ChangeEvent struct {
	Path      string
	Table     *Table
	Timestamp time.Time
}

// Watcher monitors a single layout file so the preview panel can
// re-render a layout while the user edits it. The table driving the
// active transliteration engine is built once at startup and is never
// swapped; a changed layout takes effect on restart.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration

	events chan ChangeEvent
	errors chan error

	done chan struct{}
	wg   sync.WaitGroup

	// last write seen, checked by the debounce tick
	mu      sync.Mutex
	dirtyAt time.Time
}

// NewWatcher creates a watcher for the layout file at path.
func NewWatcher(path string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		path:      absPath,
		debounce:  500 * time.Millisecond,
		events:    make(chan ChangeEvent, 4),
		errors:    make(chan error, 4),
		done:      make(chan struct{}),
	}, nil
}

// SetDebounce overrides the default 500ms debounce interval. Must be
// called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Events returns the channel of reload events.
func (w *Watcher) Events() <-chan ChangeEvent {
	return w.events
}

// Errors returns the channel of watch and reload errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Start begins watching. Editors replace files rather than write them
// in place, so the parent directory is watched and events are filtered
// by name.
func (w *Watcher) Start() error {
	if _, err := os.Stat(w.path); err != nil {
		return err
	}
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	w.wg.Add(2)
	go w.eventLoop()
	go w.debounceLoop()
	return nil
}

// Stop shuts the watcher down.
func (w *Watcher) Stop() error {
	close(w.done)
	err := w.fsWatcher.Close()
	w.wg.Wait()
	close(w.events)
	close(w.errors)
	return err
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			w.mu.Lock()
			w.dirtyAt = time.Now()
			w.mu.Unlock()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

// debounceLoop reloads once the file has been stable for the debounce
// interval, so a half-written save never reaches the preview.
func (w *Watcher) debounceLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return

		case now := <-ticker.C:
			w.mu.Lock()
			dirty := !w.dirtyAt.IsZero() && now.Sub(w.dirtyAt) >= w.debounce
			if dirty {
				w.dirtyAt = time.Time{}
			}
			w.mu.Unlock()
			if !dirty {
				continue
			}

			table, err := Load(w.path)
			if err != nil {
				select {
				case w.errors <- err:
				default:
				}
				continue
			}
			select {
			case w.events <- ChangeEvent{Path: w.path, Table: table, Timestamp: now}:
			default:
			}
		}
	}
}
