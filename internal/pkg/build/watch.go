package build

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ozacod/raider/internal/pkg/build/cmake"
	"github.com/ozacod/raider/internal/pkg/logging"
)

// DefaultDebounce groups the burst of events an editor save produces
const DefaultDebounce = 300 * time.Millisecond

// WatchOptions selects the files whose changes trigger a rebuild
type WatchOptions struct {
	// Root is watched non-recursively for CMake files.
	Root string

	// Dirs are watched recursively for sources.
	Dirs []string

	// Extensions are the source extensions that count as changes.
	Extensions []string

	// Debounce is the quiet period before a rebuild; zero uses DefaultDebounce.
	Debounce time.Duration
}

// Relevant reports whether a change to path should trigger a rebuild
func (o WatchOptions) Relevant(path string) bool {
	base := filepath.Base(path)
	if base == cmake.ListsFile || base == cmake.PresetsFile || strings.HasSuffix(base, ".cmake") {
		return true
	}
	return slices.Contains(o.Extensions, filepath.Ext(base))
}

// Watch calls rebuild after every burst of relevant file changes until ctx
// is cancelled. Rebuilds never overlap.
func Watch(ctx context.Context, opts WatchOptions, rebuild func(ctx context.Context)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(opts.Root); err != nil {
		return err
	}
	for _, dir := range opts.Dirs {
		addRecursive(w, dir)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// New directories under a source dir join the watch
			if ev.Op&fsnotify.Create != 0 {
				addRecursive(w, ev.Name)
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 || !opts.Relevant(ev.Name) {
				continue
			}
			logging.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("change")
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Warn().Err(err).Msg("watcher error")
		case <-timer.C:
			rebuild(ctx)
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			logging.Debug().Err(err).Str("dir", path).Msg("watch")
		}
		return nil
	})
}
