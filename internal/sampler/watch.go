package sampler

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const reloadDebounce = 150 * time.Millisecond

// Watcher reports when the file behind the loaded image changes. It watches
// the parent directory so editors that replace the file by rename still
// trigger a reload.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan string
	stopCh  chan struct{}
	once    sync.Once

	mu      sync.Mutex
	target  string
	dir     string
	pending *time.Timer
}

// NewWatcher starts an idle watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		watcher: fw,
		events:  make(chan string, 4),
		stopCh:  make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Events delivers the watched path after each settled change.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Watch switches the watcher to path. An empty path stops watching.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	abs := path
	if path != "" {
		var err error
		if abs, err = filepath.Abs(path); err != nil {
			return err
		}
	}
	dir := filepath.Dir(abs)
	if w.dir != "" && (path == "" || w.dir != dir) {
		_ = w.watcher.Remove(w.dir)
		w.dir = ""
	}
	w.target = abs
	if path == "" || w.dir == dir {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		w.target = ""
		return err
	}
	w.dir = dir
	return nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("image watcher error")
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.target == "" || filepath.Clean(event.Name) != w.target {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	target := w.target
	w.pending = time.AfterFunc(reloadDebounce, func() {
		select {
		case w.events <- target:
		default:
		}
	})
}
