// Package devreload provides source watching for the ember host.
// When enabled, it watches the game's source tree and asks the host to
// restart the game when a .lua file changes, carrying the changed path
// in the restart payload.
package devreload

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ember2d/ember/pkg/log"
)

// Config holds configuration options for the dev-reload watcher.
type Config struct {
	// DebounceDelay is the delay to wait after a file change before
	// requesting a restart, so editor save bursts trigger one restart.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
	}
}

// Watcher monitors a game source directory for .lua changes.
type Watcher struct {
	mu sync.Mutex

	dir           string
	onChange      func(path string)
	logger        log.Logger
	debounceDelay time.Duration

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// New creates a watcher over dir. onChange is called from the watcher
// goroutine with the path of the last changed file.
func New(dir string, onChange func(path string), logger log.Logger, cfg Config) *Watcher {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Watcher{
		dir:           dir,
		onChange:      onChange,
		logger:        logger,
		debounceDelay: cfg.DebounceDelay,
	}
}

// Start begins watching. It returns an error if the directory cannot be
// watched.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the whole tree; games keep source in subdirectories too.
	dirs := 0
	err = filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs++
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.logger.Info("dev reload watching", log.String("dir", w.dir), log.Int("dirs", dirs))

	w.wg.Add(1)
	go w.watchLoop(watchCtx, watcher)

	return nil
}

// Stop ends watching and waits for the watcher goroutine.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()

	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()
}

func (w *Watcher) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer w.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".lua") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceChange(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("dev reload watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) debounceChange(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}

	w.debounce = time.AfterFunc(w.debounceDelay, func() {
		w.logger.Info("source changed", log.String("path", path))
		w.onChange(path)
	})
}
