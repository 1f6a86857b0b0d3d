// Package watch reports changes to the local landscape input files.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/GLADI8R/landscape2/internal/logger"
)

// ErrNothingToWatch is returned when no local input path was configured.
var ErrNothingToWatch = errors.New("no local input files to watch")

// ChangeType is the kind of change observed on a path.
type ChangeType string

// Change types.
const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// Change is a change to a watched path.
type Change struct {
	Path string
	Type ChangeType
}

// Watcher watches input files and directories. Files are watched through
// their parent directory so that editors replacing a file by rename are
// still observed.
type Watcher struct {
	files map[string]struct{}
	dirs  map[string]struct{}

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a watcher over paths. Empty paths are ignored, so the
// configured data file, settings file and logos directory can be passed
// as they are.
func New(paths ...string) *Watcher {
	w := &Watcher{
		files: make(map[string]struct{}),
		dirs:  make(map[string]struct{}),
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			w.dirs[p] = struct{}{}
		} else {
			w.files[p] = struct{}{}
		}
	}
	return w
}

// Watch starts watching and returns a channel of changes. The channel is
// closed when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan Change, error) {
	if len(w.files) == 0 && len(w.dirs) == 0 {
		return nil, ErrNothingToWatch
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, errors.New("watcher is closed")
	}
	if w.watcher != nil {
		return nil, errors.New("watcher already started")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	for _, dir := range w.watchedDirs() {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	w.watcher = fw

	changes := make(chan Change)
	go w.run(ctx, fw, changes)
	return changes, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, changes chan<- Change) {
	defer close(changes)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			change := w.handleEvent(event)
			if change == nil {
				continue
			}
			select {
			case changes <- *change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// handleEvent maps an fsnotify event to a change, or nil when the event is
// not relevant.
func (w *Watcher) handleEvent(event fsnotify.Event) *Change {
	path := filepath.Clean(event.Name)
	if strings.HasPrefix(filepath.Base(path), ".") {
		return nil
	}
	if !w.relevant(path) {
		return nil
	}

	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return nil
		}
		return &Change{Path: path, Type: ChangeCreated}
	case event.Has(fsnotify.Write):
		return &Change{Path: path, Type: ChangeUpdated}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &Change{Path: path, Type: ChangeDeleted}
	default:
		return nil
	}
}

func (w *Watcher) relevant(path string) bool {
	if _, ok := w.files[path]; ok {
		return true
	}
	_, ok := w.dirs[filepath.Dir(path)]
	return ok
}

// watchedDirs returns the directories registered with fsnotify.
func (w *Watcher) watchedDirs() []string {
	seen := make(map[string]struct{})
	var dirs []string
	add := func(dir string) {
		if _, ok := seen[dir]; ok {
			return
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	for dir := range w.dirs {
		add(dir)
	}
	for file := range w.files {
		add(filepath.Dir(file))
	}
	return dirs
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
