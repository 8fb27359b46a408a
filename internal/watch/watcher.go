// Package watch re-runs a diff whenever either of two files changes.
//
// Every change triggers a complete diff of both files as they are on disk at
// that moment. Nothing is carried over between runs.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/klytics/diffkit/internal/input"
	"github.com/klytics/diffkit/internal/linediff"
)

// DefaultDebounce is used when Config.Debounce is not positive.
const DefaultDebounce = 300 * time.Millisecond

// Config names the watched pair.
type Config struct {
	Original string
	Modified string
	Debounce time.Duration
}

// Result is one diff run.
type Result struct {
	Time    time.Time
	Trigger string // path whose change caused the run, empty for the initial run
	Entries []linediff.Entry
	Stats   linediff.Stats
	Err     error
}

// Handler receives every diff run.
type Handler func(Result)

// Watcher watches the directories holding both files so that editors that
// save by rename are still noticed.
type Watcher struct {
	Config  Config
	Loader  *input.Loader
	Handler Handler

	mu      sync.Mutex
	runs    int
	timer   *time.Timer
	stopped bool
	pending sync.WaitGroup // debounced refreshes in flight
	watcher *fsnotify.Watcher
	targets map[string]bool
}

// New creates a watcher for the pair in cfg.
func New(cfg Config, loader *input.Loader) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	targets := make(map[string]bool, 2)
	for _, p := range []string{cfg.Original, cfg.Modified} {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("could not resolve %s: %w", p, err)
		}
		targets[abs] = true
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	return &Watcher{
		Config:  cfg,
		Loader:  loader,
		watcher: fsw,
		targets: targets,
	}, nil
}

// Start runs an initial diff, then re-diffs on every change until ctx is
// cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	dirs := make(map[string]bool)
	for target := range w.targets {
		dirs[filepath.Dir(target)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.watcher.Close()
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}
	}

	logrus.Debugf("watch: %s and %s, debounce %s", w.Config.Original, w.Config.Modified, w.Config.Debounce)
	w.Refresh("")

	for {
		select {
		case <-ctx.Done():
			logrus.Debugf("watch: stopping")
			w.stop()
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logrus.Warnf("watch: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}
	path, err := filepath.Abs(event.Name)
	if err != nil || !w.targets[path] {
		return
	}

	// Debounce: a save often produces several events in a row.
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.Config.Debounce, func() {
		w.mu.Lock()
		if w.stopped {
			w.mu.Unlock()
			return
		}
		w.pending.Add(1)
		w.mu.Unlock()
		defer w.pending.Done()
		w.Refresh(path)
	})
}

// stop cancels any pending refresh and waits for one already running, so
// the handler is never called after Start returns.
func (w *Watcher) stop() {
	w.mu.Lock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.pending.Wait()
}

// Refresh diffs both files now and passes the result to the handler.
func (w *Watcher) Refresh(trigger string) Result {
	res := Result{Time: time.Now(), Trigger: trigger}

	original, err := w.Loader.LoadOptional(w.Config.Original)
	if err == nil {
		var modified *input.Text
		if modified, err = w.Loader.LoadOptional(w.Config.Modified); err == nil {
			res.Entries = linediff.Diff(original.Content, modified.Content)
			res.Stats = linediff.Count(res.Entries)
		}
	}
	res.Err = err

	if err != nil {
		logrus.Warnf("watch: %v", err)
	} else {
		logrus.Debugf("watch: %s", res.Stats)
	}

	w.mu.Lock()
	w.runs++
	w.mu.Unlock()

	if w.Handler != nil {
		w.Handler(res)
	}
	return res
}

// Runs returns how many diffs have been run.
func (w *Watcher) Runs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runs
}
