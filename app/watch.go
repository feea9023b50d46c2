package app

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher signals changes to a set of files. Their directories are watched
// rather than the files so that editors replacing a file by rename are still
// seen.
type Watcher struct {
	fw      *fsnotify.Watcher
	paths   map[string]bool
	changes chan struct{}
	done    chan struct{}
	log     *slog.Logger
}

func WatchFile(path string, logger *slog.Logger) (*Watcher, error) {
	return WatchFiles([]string{path}, logger)
}

// WatchFiles signals when any of paths changes
func WatchFiles(paths []string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(paths) == 0 {
		return nil, errors.New("watch: no files given")
	}
	abs := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, path := range paths {
		p, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("watch %q: %w", path, err)
		}
		abs[p] = true
		dirs[filepath.Dir(p)] = true
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %q: %w", dir, err)
		}
	}

	w := &Watcher{
		fw:      fw,
		paths:   abs,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     logger,
	}
	go w.loop()
	return w, nil
}

// Changes receives a value after a watched file is written or recreated. Bursts
// of events collapse into one pending value.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !w.paths[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.log.Debug("shader file changed", "path", event.Name, "op", event.Op.String())
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Error("shader file watcher error", "err", err)
		}
	}
}

func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}
