package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vnupipe/vnupipe/internal/domain"
)

// DefaultDebounce is how long the watcher waits for more events before
// emitting a batch. Editors often write a file several times per save.
const DefaultDebounce = 200 * time.Millisecond

var ignoreDirs = map[string]bool{
	".git":         true,
	".vnupipe":     true,
	"node_modules": true,
	"vendor":       true,
}

// Option configures a Watcher.
type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher implements domain.FileWatcher using fsnotify.
type Watcher struct {
	debounce time.Duration
	logger   *slog.Logger
}

var _ domain.FileWatcher = (*Watcher)(nil)

func New(opts ...Option) *Watcher {
	w := &Watcher{
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Watch recursively watches root. Created and written files matching
// extensions are collected and emitted as sorted, de-duplicated batches once
// no event arrived for the debounce window.
func (w *Watcher) Watch(ctx context.Context, root string, extensions []string, excludePaths ...string) (<-chan []string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absRoot); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	f := &filter{root: absRoot, exts: extensions, exclude: excludePaths}
	if err := addRecursive(fw, absRoot, f); err != nil {
		fw.Close()
		return nil, err
	}

	out := make(chan []string)
	go w.loop(ctx, fw, f, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, f *filter, out chan<- []string) {
	defer close(out)
	defer fw.Close()

	pending := make(map[string]bool)
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(pending) == 0 {
			return
		}
		batch := make([]string, 0, len(pending))
		for p := range pending {
			batch = append(batch, p)
		}
		slices.Sort(batch)
		clear(pending)

		select {
		case out <- batch:
		case <-ctx.Done():
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(fw, event.Name, f); err != nil {
						w.logger.Warn("watcher.Watch", "dir", event.Name, "error", err)
					}
					continue
				}
			}

			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !f.matchFile(event.Name) {
				continue
			}

			w.logger.Debug("watcher.Watch", "file path", event.Name, "op", event.Op.String())
			pending[event.Name] = true

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			flush()

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher.Watch", "error", err)
		}
	}
}

func addRecursive(fw *fsnotify.Watcher, dir string, f *filter) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != f.root && f.skipDir(path) {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

type filter struct {
	root    string
	exts    []string
	exclude []string
}

func (f *filter) rel(path string) string {
	rel, err := filepath.Rel(f.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func (f *filter) excluded(path string) bool {
	rel := f.rel(path)
	for _, ex := range f.exclude {
		ex = strings.TrimSuffix(filepath.ToSlash(ex), "/")
		if rel == ex || strings.HasPrefix(rel, ex+"/") || filepath.Base(path) == ex {
			return true
		}
	}
	return false
}

func (f *filter) skipDir(path string) bool {
	return ignoreDirs[filepath.Base(path)] || f.excluded(path)
}

func (f *filter) matchFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.ContainsFunc(f.exts, func(e string) bool { return strings.ToLower(e) == ext }) {
		return false
	}
	return !f.excluded(path)
}
