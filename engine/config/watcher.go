package config

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer"
)

// Watcher reloads a pipeline file whenever it changes on disk. Parsed
// pipelines are handed to the frame loop through Pending; the watcher
// never touches the device itself.
type Watcher struct {
	path     string
	fsnotify *fsnotify.Watcher
	pending  chan *renderer.Pipeline
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewWatcher starts watching path. The parent directory is watched so
// that editors replacing the file on save are noticed too.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fsnotify: fsWatch,
		pending:  make(chan *renderer.Pipeline, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.start()
	return w, nil
}

// Pending yields freshly parsed pipelines. Only the latest unread one is
// kept.
func (w *Watcher) Pending() <-chan *renderer.Pipeline {
	return w.pending
}

func (w *Watcher) start() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path || !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			p, err := LoadPipeline(w.path)
			if err != nil {
				// Keep the running pipeline until the file is fixed.
				core.LogWarn("pipeline reload failed: %s", err)
				continue
			}
			core.LogInfo("pipeline '%s' reloaded with %d layers", w.path, len(p.Layers))
			w.publish(p)

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) publish(p *renderer.Pipeline) {
	for {
		select {
		case w.pending <- p:
			return
		default:
		}
		// Drop the stale pipeline the frame loop has not picked up.
		select {
		case <-w.pending:
		default:
		}
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsnotify.Close()
		w.wg.Wait()
	})
	if err != nil {
		return errors.Join(errors.New("failed to close pipeline watcher"), err)
	}
	return nil
}
