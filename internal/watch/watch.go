// Package watch re-runs generation when model files change.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/logger"
)

// Defaults for New
const (
	DefaultDebounce      = 200 * time.Millisecond
	DefaultRunsPerMinute = 30
)

// Trigger is called with the sorted set of files changed since the last run.
// Its error is logged; watching continues.
type Trigger func(ctx context.Context, changed []string) error

// Watcher watches a fixed set of files through their parent directories, so
// editors that replace files by rename are still seen.
type Watcher struct {
	files    map[string]bool
	watcher  *fsnotify.Watcher
	debounce time.Duration
	limiter  *rate.Limiter
	logger   *zap.SugaredLogger
}

// New starts watching paths. runsPerMinute bounds how often the trigger
// fires; bursts within debounce are coalesced into one run.
func New(paths []string, debounce time.Duration, runsPerMinute int) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no files to watch")
	}
	if runsPerMinute <= 0 {
		runsPerMinute = DefaultRunsPerMinute
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		files:    make(map[string]bool, len(paths)),
		watcher:  fw,
		debounce: debounce,
		limiter:  rate.NewLimiter(rate.Limit(float64(runsPerMinute)/60.0), 1),
		logger:   logger.ComponentLogger("watch"),
	}

	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", path)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	return w, nil
}

// relevant reports whether event changes a watched file's content
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

// Run blocks until ctx is done, calling trigger after each debounced burst
// of changes. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, trigger Trigger) error {
	defer w.watcher.Close()

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debugw("Model file changed", logger.FieldFile, event.Name, "op", event.Op.String())
			abs, _ := filepath.Abs(event.Name)
			pending[abs] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.limiter.Wait(ctx); err != nil {
				return nil
			}
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)

			if err := trigger(ctx, changed); err != nil {
				w.logger.Warnw("Regeneration failed", logger.FieldError, err, logger.FieldCount, len(changed))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// Close stops watching without running
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
