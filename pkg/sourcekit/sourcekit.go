// Package sourcekit reads physical source lines by file name and line number.
//
// Files are cached per Cache value and stay cached until they are invalidated,
// either manually with Invalidate and Reset, or by a running Watch.
package sourcekit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"
)

// EnvSourceRoot is the environment variable used to resolve relative file names
// when Cache.Root is not set.
const EnvSourceRoot = "SPREAD_SOURCE_ROOT"

const (
	ErrLineNotFound    errorkit.Error = "ErrLineNotFound"
	ErrAlreadyWatching errorkit.Error = "ErrAlreadyWatching"
)

// Cache is a source line cache. Its zero value is ready to use.
type Cache struct {
	// Root is used to resolve relative file names,
	// for example the frames of a binary that was built with -trimpath.
	//
	// Default: the value of SPREAD_SOURCE_ROOT, or the working directory.
	Root string
	// Logger receives debug entries about loading and invalidation.
	Logger *logging.Logger

	mutex sync.RWMutex
	files map[string][]string
	// version changes with every invalidation,
	// so a read that overlapped one doesn't store what it read.
	version uint64
	watcher *fsnotify.Watcher
}

// Line returns the content of the 1-based line of file, without its line terminator.
func (c *Cache) Line(ctx context.Context, file string, line int) (string, error) {
	path, err := c.path(file)
	if err != nil {
		return "", err
	}
	lines, err := c.lines(ctx, path)
	if err != nil {
		return "", err
	}
	if line < 1 || len(lines) < line {
		return "", ErrLineNotFound.F("%s:%d", path, line)
	}
	return strings.TrimSuffix(lines[line-1], "\r"), nil
}

// Invalidate drops file from the cache, so the next Line call reads it again.
func (c *Cache) Invalidate(ctx context.Context, file string) {
	path, err := c.path(file)
	if err != nil {
		return
	}
	c.invalidate(ctx, path)
}

// Reset drops every cached file.
func (c *Cache) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.files = nil
	c.version++
}

// Cached reports whether file is currently held by the cache.
func (c *Cache) Cached(file string) bool {
	path, err := c.path(file)
	if err != nil {
		return false
	}
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	_, ok := c.files[path]
	return ok
}

func (c *Cache) invalidate(ctx context.Context, path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.version++
	if _, ok := c.files[path]; !ok {
		return
	}
	delete(c.files, path)
	c.logger().Debug(ctx, "source file invalidated", logging.Field("path", path))
}

func (c *Cache) lines(ctx context.Context, path string) ([]string, error) {
	c.mutex.RLock()
	lines, ok := c.files[path]
	version := c.version
	c.mutex.RUnlock()
	if ok {
		return lines, nil
	}

	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	lines = strings.Split(string(data), "\n")

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.version != version {
		c.logger().Debug(ctx, "source file changed while it was read, not caching it",
			logging.Field("path", path))
		return lines, nil
	}
	if c.files == nil {
		c.files = make(map[string][]string)
	}
	c.files[path] = lines
	if c.watcher != nil {
		if err := c.watcher.Add(filepath.Dir(path)); err != nil {
			c.logger().Warn(ctx, "unable to watch source directory", logging.Field("path", path), logging.ErrField(err))
		}
	}
	c.logger().Debug(ctx, "source file loaded",
		logging.Field("path", path),
		logging.Field("lines", len(lines)))
	return lines, nil
}

var readFile = os.ReadFile

func (c *Cache) path(file string) (string, error) {
	if filepath.IsAbs(file) {
		return filepath.Clean(file), nil
	}
	root, err := c.root()
	if err != nil {
		return "", err
	}
	if root != "" {
		file = filepath.Join(root, file)
	}
	return filepath.Abs(file)
}

func (c *Cache) root() (string, error) {
	if c.Root != "" {
		return c.Root, nil
	}
	root, _, err := env.Lookup[string](EnvSourceRoot)
	return root, err
}

var fallbackLogger = &logging.Logger{}

func (c *Cache) logger() *logging.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return fallbackLogger
}
