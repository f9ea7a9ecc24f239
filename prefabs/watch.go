package prefabs

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports changed prefab and script files on Events. Run drives it;
// the channels close when Run returns.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	return &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
	}, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.watcher.Close()
	})
	return err
}

// Run forwards filtered file events until ctx is done or the underlying
// watcher closes. A path is reported once it has been quiet for
// watchDebounce, so an editor's truncate-then-write lands as one event
// after the final write.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.Errors)
	defer close(w.Events)
	defer w.Close()

	pending := newDebouncer(watchDebounce)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time
	schedule := func(now time.Time) {
		if wait, ok := pending.next(now); ok {
			timer.Reset(wait)
			fire = timer.C
			return
		}
		fire = nil
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) {
				continue
			}
			now := time.Now()
			pending.touch(event.Name, now)
			schedule(now)
		case <-fire:
			now := time.Now()
			for _, name := range pending.due(now) {
				select {
				case w.Events <- name:
				default:
					// consumer is behind; the content hash check makes a dropped
					// duplicate harmless
				}
			}
			schedule(now)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// debouncer holds paths until no event has touched them for delay.
type debouncer struct {
	delay    time.Duration
	deadline map[string]time.Time
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, deadline: map[string]time.Time{}}
}

// touch pushes path's deadline to now+delay.
func (d *debouncer) touch(path string, now time.Time) {
	d.deadline[path] = now.Add(d.delay)
}

// due removes and returns, sorted, the paths whose deadline has passed.
func (d *debouncer) due(now time.Time) []string {
	var out []string
	for path, at := range d.deadline {
		if !now.Before(at) {
			out = append(out, path)
			delete(d.deadline, path)
		}
	}
	slices.Sort(out)
	return out
}

// next is the wait until the earliest deadline. ok is false when nothing is
// pending.
func (d *debouncer) next(now time.Time) (time.Duration, bool) {
	if len(d.deadline) == 0 {
		return 0, false
	}
	var earliest time.Time
	for _, at := range d.deadline {
		if earliest.IsZero() || at.Before(earliest) {
			earliest = at
		}
	}
	return max(earliest.Sub(now), 0), true
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
