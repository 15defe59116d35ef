package pagecache

import (
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/synthos/synthos/internal/logging"
)

// ChangeHandler is called with a page name whenever its cache file is
// written, created or removed on disk. It does not tell writers apart: this
// process's own Put/Delete trigger it just as a sibling synthosd instance
// writing into a shared cache directory does.
type ChangeHandler func(page string)

// Watcher watches a Cache's directory for externally-made changes, so a
// dev setup running multiple synthosd instances against one shared
// pagecache directory stays in sync without polling.
type Watcher struct {
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	started bool
}

// Watch starts watching dir. The directory must already exist;
// callers typically Put at least one page first.
func Watch(dir string, onChange ChangeHandler) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		started: true,
	}
	go watcher.run(onChange)
	return watcher, nil
}

func (w *Watcher) run(onChange ChangeHandler) {
	defer close(w.doneCh)

	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
				continue
			}
			if !strings.HasSuffix(ev.Name, ".json") {
				continue
			}
			page := strings.TrimSuffix(pathBase(ev.Name), ".json")
			onChange(page)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Logger.Warn().Err(err).Msg("pagecache: watcher error")
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		select {
		case <-w.stopCh:
		default:
			close(w.stopCh)
		}
		<-w.doneCh
		w.started = false
	}
	return w.watcher.Close()
}

func pathBase(p string) string {
	idx := strings.LastIndexByte(p, '/')
	if idx < 0 {
		return p
	}
	return p[idx+1:]
}
