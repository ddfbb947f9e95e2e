package catalog

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/platinummonkey/mallard/pkg/observability"
)

// Watcher reloads the catalog file when it changes on disk and
// republishes it through a Store. A reload that fails to parse or
// validate keeps the previously published catalog.
type Watcher struct {
	path     string
	store    *Store
	logger   *observability.Logger
	onReload func(cat *Catalog, err error)
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// WatchFile starts watching path for changes. onReload, if non-nil, is
// invoked after every reload attempt with the outcome.
//
// The parent directory is watched rather than the file itself: most
// editors and config management tools replace the file, which would
// otherwise drop the watch.
func WatchFile(path string, store *Store, logger *observability.Logger, onReload func(cat *Catalog, err error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		store:    store,
		logger:   logger,
		onReload: onReload,
		watcher:  fsw,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("Catalog watcher error")
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	cat, err := Load(w.path)
	if err != nil {
		w.logger.WithError(err).WithField("path", w.path).Error("Catalog reload failed, keeping previous catalog")
	} else {
		w.store.Replace(cat)
		w.logger.WithFields(map[string]interface{}{
			"path":     w.path,
			"projects": len(cat.Projects),
		}).Info("Catalog reloaded")
	}
	if w.onReload != nil {
		w.onReload(cat, err)
	}
}

// Close stops the watcher. The last published catalog remains current.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
