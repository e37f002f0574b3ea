package loader

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/Carmen-Shannon/beagle-go/engine/model"
	"github.com/fsnotify/fsnotify"
)

// watcher is the implementation of the Watcher interface.
type watcher struct {
	loader Loader
	path   string

	fs      *fsnotify.Watcher
	updates chan model.Model
	done    chan bool
	wg      sync.WaitGroup
	once    sync.Once
}

// Watcher reloads a scene file whenever it changes on disk and publishes each successfully
// resolved model. Failed reloads are logged and the previous model stays current.
type Watcher interface {
	// Updates delivers freshly resolved models. Only the newest pending model is kept, so a slow
	// consumer never sees a stale one.
	//
	// Returns:
	//   - <-chan model.Model: the update channel
	Updates() <-chan model.Model

	// Close stops watching and waits for the watch goroutine to exit.
	//
	// Returns:
	//   - error: error from the underlying file watcher
	Close() error
}

var _ Watcher = &watcher{}

// NewWatcher starts watching the scene file at path. The containing directory is watched so that
// editors replacing the file through a rename are still seen.
//
// Parameters:
//   - l: the loader used to re-import the file
//   - path: the scene file to watch
//
// Returns:
//   - Watcher: the running watcher
//   - error: error if the path cannot be resolved or watched
func NewWatcher(l Loader, path string) (Watcher, error) {
	abs, err := cacheKey(path)
	if err != nil {
		return nil, err
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &watcher{
		loader:  l,
		path:    abs,
		fs:      fs,
		updates: make(chan model.Model, 1),
		done:    make(chan bool),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *watcher) Updates() <-chan model.Model {
	return w.updates
}

func (w *watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

// run consumes file events until Close is called.
func (w *watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				w.reload()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("[Watcher] %s: %v", w.path, err)
		}
	}
}

// reload re-imports the watched file and publishes the result.
func (w *watcher) reload() {
	m, err := w.loader.Reload(w.path)
	if err != nil {
		log.Printf("[Watcher] reload failed, keeping previous scene: %v", err)
		return
	}

	// drop a pending model the consumer has not picked up yet
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- m:
	default:
	}
}
