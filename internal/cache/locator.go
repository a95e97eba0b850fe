package cache

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// appDirName is the directory segment under the user cache home.
const appDirName = "tealdeer"

// Root resolves the cache root directory. Resolution happens fresh on every
// call, never memoized, so a settings change takes effect immediately.
//
// An explicit override must name an existing directory; the default location
// under the user cache home need not exist yet (Update creates it).
func (c *Cache) Root() (string, error) {
	if dir := c.settings.CacheDir; dir != "" {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return "", newCacheErrorf(
				"cache directory override (%s) does not exist or is not a directory", dir)
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", wrapCacheError(err, "could not resolve cache directory override")
		}
		return abs, nil
	}

	if xdg.CacheHome == "" {
		return "", newCacheErrorf("could not determine user cache directory")
	}
	return filepath.Join(xdg.CacheHome, appDirName), nil
}

// pagesDir returns the root of the page tree inside the cache.
func (c *Cache) pagesDir() (string, error) {
	root, err := c.Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, archiveRootDir, pagesDirName), nil
}

// customPagesDir returns the directory merged into every lookup in addition
// to the platform and common sources. pagesDir is the page tree the default
// is resolved relative to.
func (c *Cache) customPagesDir(pagesDir string) string {
	if dir := c.settings.CustomPagesDir; dir != "" {
		return dir
	}
	return filepath.Join(pagesDir, "..", customPagesDirName)
}
