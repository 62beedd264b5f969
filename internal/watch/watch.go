// Package watch re-runs a callback when a project tree changes. It backs
// `stencil verify --watch`: filesystem events are debounced so a burst of
// writes (a generator run, an editor save-all) triggers one re-validation.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// Options configures a watch session.
type Options struct {
	// Debounce is the quiet window before onChange fires (default 400ms).
	Debounce time.Duration
	// IgnoreDirs are directory names skipped entirely (default: node_modules,
	// .git, dist). Scaffolded projects put tens of thousands of files under
	// node_modules; watching them exhausts inotify limits.
	IgnoreDirs []string
}

// WithDefaults fills unset options.
func (o Options) WithDefaults() Options {
	if o.Debounce <= 0 {
		o.Debounce = 400 * time.Millisecond
	}
	if o.IgnoreDirs == nil {
		o.IgnoreDirs = []string{"node_modules", ".git", "dist"}
	}
	return o
}

// Watch observes root recursively and invokes onChange after each debounced
// batch of filesystem events. It blocks until ctx is cancelled, returning
// ctx.Err(), or until the watcher fails.
func Watch(ctx context.Context, root string, opts Options, onChange func()) error {
	opts = opts.WithDefaults()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := addRecursive(w, root, opts.IgnoreDirs); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	trigger := make(chan struct{}, 1)
	g, ctx := errgroup.WithContext(ctx)

	// Event loop: registers newly created directories and coalesces events
	// into the trigger channel.
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case event, ok := <-w.Events:
				if !ok {
					return nil
				}
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = addRecursive(w, event.Name, opts.IgnoreDirs)
					}
				}
				select {
				case trigger <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return fmt.Errorf("watcher: %w", err)
			}
		}
	})

	// Debounce loop: fires onChange once per quiet window.
	g.Go(func() error {
		timer := time.NewTimer(opts.Debounce)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-trigger:
				timer.Reset(opts.Debounce)
			case <-timer.C:
				onChange()
			}
		}
	})

	return g.Wait()
}

// addRecursive registers dir and every non-ignored subdirectory.
func addRecursive(w *fsnotify.Watcher, dir string, ignore []string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Directories can vanish mid-walk (generator temp dirs).
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		for _, name := range ignore {
			if d.Name() == name {
				return filepath.SkipDir
			}
		}
		return w.Add(path)
	})
}
