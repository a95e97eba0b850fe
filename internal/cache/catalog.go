package cache

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ListPages returns the sorted, deduplicated names of all pages available
// for the current platform. Only the common directory and the platform's
// own directory are traversed; other platform directories are pruned before
// descending into them. A name present in both contributes one entry.
//
// A missing page tree yields an empty result with a logged error rather
// than a failure, so listing degrades gracefully before the first update.
func (c *Cache) ListPages() ([]string, error) {
	pagesDir, err := c.pagesDir()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(pagesDir); os.IsNotExist(err) {
		c.logger.Error("pages directory does not exist, run update first", "dir", pagesDir)
		return []string{}, nil
	}

	platformDir, hasPlatform := c.platform.DirName()

	// Traversal policy, evaluated for top-level directories before
	// descending: only the common directory and the current platform's
	// directory are entered.
	shouldDescend := func(name string) bool {
		if name == commonDirName {
			return true
		}
		return hasPlatform && name == platformDir
	}

	var names []string
	walkErr := filepath.WalkDir(pagesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			c.logger.Debug("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == pagesDir {
				return nil
			}
			if filepath.Dir(path) == pagesDir && !shouldDescend(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(d.Name(), pageExt) {
			names = append(names, strings.TrimSuffix(d.Name(), pageExt))
		}
		return nil
	})
	if walkErr != nil {
		return nil, wrapCacheError(walkErr, "could not walk pages directory")
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}
