package sourcekit

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.llib.dev/frameless/pkg/logging"
)

// Watch invalidates cached files when they change on disk.
// It blocks until the context is done.
//
// Directories of files cached before and during the Watch call are observed.
// Only one Watch may run for a Cache at a time.
func (c *Cache) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := c.setWatcher(w); err != nil {
		return err
	}
	defer c.unsetWatcher()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				c.invalidate(ctx, filepath.Clean(event.Name))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.logger().Warn(ctx, "source watcher error", logging.ErrField(err))
		}
	}
}

func (c *Cache) setWatcher(w *fsnotify.Watcher) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.watcher != nil {
		return ErrAlreadyWatching
	}
	dirs := make(map[string]struct{})
	for path := range c.files {
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return err
		}
	}
	c.watcher = w
	return nil
}

func (c *Cache) unsetWatcher() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.watcher = nil
}
