package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watcher checks files again when they are written.
type Watcher struct {
	watchingDirs, watchingFiles map[string]struct{}

	watcher *fsnotify.Watcher
	check   func(path string) bool
}

func NewWatcher(check func(path string) bool) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watchingDirs:  make(map[string]struct{}),
		watchingFiles: make(map[string]struct{}),
		watcher:       watcher,
		check:         check,
	}, nil
}

// WatchFile adds path to watched files. Directories are watched instead of
// files, so that editors replacing files on save are noticed too.
func (w *Watcher) WatchFile(path string) error {
	fullPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.watchingFiles[fullPath] = struct{}{}

	dir := filepath.Dir(fullPath)
	if _, ok := w.watchingDirs[dir]; ok {
		return nil
	}

	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	w.watchingDirs[dir] = struct{}{}

	return nil
}

// Run handles file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			fname, _ := filepath.Abs(event.Name)
			if _, ok := w.watchingFiles[fname]; !ok {
				continue
			}

			log.Infof("file %q modified, checking...", event.Name)
			w.check(fname)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch error: %s", err)
		}
	}
}

func watchFiles(ctx context.Context, c *checker, files []string) error {
	w, err := NewWatcher(c.checkFile)
	if err != nil {
		return err
	}

	for _, f := range files {
		if err := w.WatchFile(f); err != nil {
			w.watcher.Close()
			return fmt.Errorf("watch file %q: %w", f, err)
		}
	}

	log.Info("watching files for changes...")

	return w.Run(ctx)
}
