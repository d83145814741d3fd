package adapters

import (
	"context"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"gen-machineconf/internal/ports"
)

const defaultWatchDebounce = 500 * time.Millisecond

// WatchAdapter reruns a callback when watched input files change. Parent
// directories are watched so editors that replace files are still seen.
// Callbacks never overlap.
type WatchAdapter struct {
	Debounce time.Duration
}

func NewWatchAdapter(debounce time.Duration) WatchAdapter {
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	return WatchAdapter{Debounce: debounce}
}

func (a WatchAdapter) Watch(ctx context.Context, paths []string, onChange func(changed string) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create file watcher").
			WithCause(err)
	}
	defer watcher.Close()

	targets := map[string]struct{}{}
	dirs := map[string]struct{}{}
	for _, path := range paths {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid watch path: " + path).
				WithCause(err)
		}
		targets[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("failed to watch " + dir).
				WithCause(err)
		}
		dirs[dir] = struct{}{}
	}
	if len(targets) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no paths to watch")
	}
	log.Ctx(ctx).Info().Int("paths", len(targets)).Msg("watching inputs for changes")

	debounce := a.Debounce
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := ""

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := targets[name]; !ok {
				continue
			}
			log.Ctx(ctx).Debug().
				Str("file", name).
				Str("op", event.Op.String()).
				Msg("watched input changed")
			pending = name
			timer.Reset(debounce)
		case <-timer.C:
			if pending == "" {
				continue
			}
			changed := pending
			pending = ""
			if err := onChange(changed); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("file", changed).Msg("rerun after change failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Ctx(ctx).Error().Err(err).Msg("file watcher error")
		}
	}
}

var _ ports.WatchPort = WatchAdapter{}
