package main

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"braces.dev/errtrace"
	"github.com/fsnotify/fsnotify"
	"go.abhg.dev/litdoc/internal/pathx"
)

const _defaultDebounce = 250 * time.Millisecond

// watcher reports changes to source files.
type watcher struct {
	Log *log.Logger // optional

	// Debounce is how long to wait for changes to settle
	// before reporting them.
	Debounce time.Duration

	// Ignore lists directories whose contents are never reported,
	// e.g. the output directory.
	Ignore []string
}

// Watch watches the given files and directories,
// calling onChange with the changed paths after each burst of changes.
// Directories are watched recursively.
//
// Watch blocks until ctx is canceled.
func (w *watcher) Watch(ctx context.Context, inputs []string, onChange func(changed []string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer func() { _ = fsw.Close() }()

	ignored := func(p string) bool {
		return slices.ContainsFunc(w.Ignore, func(dir string) bool {
			return pathx.Within(dir, p)
		})
	}

	// Changes outside the inputs are dropped.
	// These come from siblings of files that were passed in directly.
	var dirs, files []string
	watched := func(p string) bool {
		return slices.ContainsFunc(dirs, func(dir string) bool {
			return pathx.Within(dir, p)
		}) || slices.Contains(files, p)
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return errtrace.Wrap(err)
		}
		if !info.IsDir() {
			// Watch the parent directory
			// so that editors replacing the file are noticed.
			if err := fsw.Add(filepath.Dir(input)); err != nil {
				return errtrace.Wrap(err)
			}
			files = append(files, filepath.Clean(input))
			continue
		}
		if err := w.addRecursive(fsw, input, ignored); err != nil {
			return errtrace.Wrap(err)
		}
		dirs = append(dirs, input)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = _defaultDebounce
	}

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			name := filepath.Clean(ev.Name)
			if !watched(name) || ignored(name) || isEditorNoise(filepath.Base(name)) {
				continue
			}

			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(name); err == nil && info.IsDir() {
					if err := w.addRecursive(fsw, name, ignored); err != nil {
						w.logf("Unable to watch %v: %v", name, err)
					}
				}
			}

			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}

			pending[name] = struct{}{}
			timer.Reset(debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			clear(pending)
			onChange(changed)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return errtrace.Wrap(err)
		}
	}
}

func (w *watcher) addRecursive(fsw *fsnotify.Watcher, root string, ignored func(string) bool) error {
	return errtrace.Wrap(filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && pathx.Hidden(d.Name()) {
			return filepath.SkipDir
		}
		if ignored(p) {
			return filepath.SkipDir
		}
		return fsw.Add(p)
	}))
}

func (w *watcher) logf(format string, args ...any) {
	if w.Log != nil {
		w.Log.Printf(format, args...)
	}
}

// isEditorNoise reports whether a file is a temporary file
// written by an editor or by litdoc itself.
func isEditorNoise(name string) bool {
	return name == ".DS_Store" ||
		strings.HasPrefix(name, ".#") ||
		strings.HasSuffix(name, ".swp") ||
		strings.HasSuffix(name, ".swx") ||
		strings.HasSuffix(name, "~") ||
		strings.HasSuffix(name, ".tmp")
}
