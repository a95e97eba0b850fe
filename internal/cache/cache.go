// Package cache maintains the local on-disk copy of the tldr page
// collection: where it lives, how it is refreshed from the remote archive,
// and how a command name is resolved to the page files that answer it.
package cache

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dbrgn/tealdeer/internal/platform"
)

// Layout of the unpacked archive inside the cache root.
const (
	// archiveRootDir is the top-level directory of the page archive.
	archiveRootDir = "tldr-master"

	// pagesDirName is the directory holding per-platform page directories.
	pagesDirName = "pages"

	// commonDirName holds pages shared by all platforms.
	commonDirName = "common"

	// customPagesDirName is the default custom pages directory, a sibling
	// of the pages tree.
	customPagesDirName = "pages.custom"

	// pageExt is the file extension of page documents.
	pageExt = ".md"
)

// Settings carries the externally-determined configuration for the cache.
// It is assembled once at the process boundary from the config file and
// environment; the cache itself never reads the environment.
type Settings struct {
	// CacheDir overrides the cache root. When set it must name an
	// existing directory. When empty, the platform-conventional user
	// cache location is used.
	CacheDir string

	// CustomPagesDir overrides the directory merged into every lookup.
	// When empty, pages.custom next to the pages tree is used.
	CustomPagesDir string

	// PagesURL is the gzip-compressed tar archive fetched by Update.
	PagesURL string

	// HTTPProxy and HTTPSProxy are applied to the matching URL scheme
	// during fetch. Unparseable values are dropped silently.
	HTTPProxy  string
	HTTPSProxy string
}

// Cache is the entry point for all cache lifecycle and page resolution
// operations. It holds no open resources; every operation re-derives the
// paths it needs.
type Cache struct {
	settings Settings
	platform platform.Platform
	logger   *slog.Logger
}

// New creates a Cache for the given settings and target platform.
// A nil logger falls back to slog.Default.
func New(settings Settings, pf platform.Platform, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		settings: settings,
		platform: pf,
		logger:   logger,
	}
}

// Update refreshes the cache from the configured archive URL: the archive
// is downloaded in full, the cache root is cleared, and the archive is
// extracted in its place.
//
// Between clearing and finishing extraction the cache is absent or partially
// populated; a concurrent reader or a crash mid-extraction observes a broken
// cache. Extracting to a side directory and renaming it in would avoid that,
// but renames don't work across the filesystem boundaries this tool targets,
// so the window is accepted.
func (c *Cache) Update() error {
	body, err := c.fetch()
	if err != nil {
		return err
	}

	root, err := c.Root()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return wrapUpdateError(err, "could not create cache directory")
	}

	if err := c.Clear(); err != nil {
		return err
	}

	if err := c.extract(bytes.NewReader(body), root); err != nil {
		return err
	}

	c.logger.Debug("cache updated", "dir", root)
	return nil
}

// LastUpdateAge returns the elapsed time since the cache was last updated,
// measured from the modification time of the unpacked archive root.
// The second return value is false if the cache does not exist yet or its
// metadata cannot be read; that is a normal state, not an error.
func (c *Cache) LastUpdateAge() (time.Duration, bool) {
	root, err := c.Root()
	if err != nil {
		return 0, false
	}

	info, err := os.Stat(filepath.Join(root, archiveRootDir))
	if err != nil {
		return 0, false
	}

	return time.Since(info.ModTime()), true
}

// Clear removes the entire cache root recursively. Clearing a nonexistent
// cache is reported as an error, not a no-op; callers that want idempotent
// clearing must check existence first.
func (c *Cache) Clear() error {
	root, err := c.Root()
	if err != nil {
		return err
	}

	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		return newCacheErrorf("cache path (%s) does not exist", root)
	case err != nil:
		return wrapCacheError(err, "could not inspect cache path")
	case !info.IsDir():
		return newCacheErrorf("cache path (%s) is not a directory", root)
	}

	if err := os.RemoveAll(root); err != nil {
		return wrapCacheError(err, "could not remove cache directory")
	}
	return nil
}
