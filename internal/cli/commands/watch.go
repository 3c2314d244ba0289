package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is how long a burst of events must be quiet before a
// rebuild.
const watchDebounce = 100 * time.Millisecond

// runWatch compiles inputs once, then recompiles each input whose file
// changes until ctx is cancelled. Compile failures are reported and do not
// stop the watch.
func runWatch(ctx context.Context, c *CommandContext, inputs []string, opts CompileOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace files, so watch the containing directories.
	watched := make(map[string]string, len(inputs))
	dirs := make(map[string]bool)
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return err
		}
		watched[abs] = in
		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}

	var (
		mu      sync.Mutex
		stopped bool
	)
	defer func() {
		mu.Lock()
		stopped = true
		mu.Unlock()
	}()
	rebuild := func(files []string) {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		reports, err := runCompile(ctx, c, files, opts)
		if rerr := renderCompile(c, reports); rerr != nil {
			c.Renderer.Error(rerr.Error())
		}
		if err != nil {
			c.Renderer.Error(err.Error())
			c.Logger.Warn("compile failed", "error", err)
		}
	}

	rebuild(inputs)
	c.Renderer.Muted("Watching for changes. Press Ctrl+C to stop.")

	var (
		debounceTimer *time.Timer
		pendingMu     sync.Mutex
		pending       = make(map[string]bool)
	)
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			in, ok := watched[filepath.Clean(event.Name)]
			if !ok {
				continue
			}

			pendingMu.Lock()
			pending[in] = true
			pendingMu.Unlock()

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				pendingMu.Lock()
				files := make([]string, 0, len(pending))
				for _, f := range inputs {
					if pending[f] {
						files = append(files, f)
					}
				}
				clear(pending)
				pendingMu.Unlock()

				if len(files) > 0 && ctx.Err() == nil {
					c.Logger.Info("change detected", "files", len(files))
					rebuild(files)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watcher error", "error", err)
		}
	}
}
