package cache

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// PageLookupResult is the ordered, non-empty list of page files that answer
// a single command lookup. Earlier entries render first. It is constructed
// fresh per lookup and owned by the caller until consumed by the renderer.
type PageLookupResult struct {
	Paths []string
}

// Reader returns the concatenation of all files in the result as one
// logical document stream. A newline separates consecutive files so a page
// without a trailing newline doesn't run into the next one. Closing the
// returned reader closes every underlying file.
func (r PageLookupResult) Reader() (io.ReadCloser, error) {
	files := make([]*os.File, 0, len(r.Paths))
	readers := make([]io.Reader, 0, 2*len(r.Paths))

	for i, path := range r.Paths {
		f, err := os.Open(path)
		if err != nil {
			for _, open := range files {
				open.Close()
			}
			return nil, errors.Wrapf(err, "opening page %s", path)
		}
		files = append(files, f)
		if i > 0 {
			readers = append(readers, strings.NewReader("\n"))
		}
		readers = append(readers, f)
	}

	return &multiFileReader{
		Reader: io.MultiReader(readers...),
		files:  files,
	}, nil
}

// multiFileReader bundles the concatenated stream with the files backing it.
type multiFileReader struct {
	io.Reader
	files []*os.File
}

// Close closes all underlying files, returning the first error encountered.
func (m *multiFileReader) Close() error {
	var firstErr error
	for _, f := range m.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// FindPages locates the ordered set of source documents for the given
// command name. A platform-specific page supersedes the common page for the
// same name; a custom page is always included in addition, never instead.
//
// Returns ErrPageNotFound when no source matches — including when the cache
// root itself cannot be resolved, in which case the underlying failure is
// logged and deliberately not distinguished from a missing page.
func (c *Cache) FindPages(name string) (PageLookupResult, error) {
	pageFilename := name + pageExt

	pagesDir, err := c.pagesDir()
	if err != nil {
		c.logger.Error("could not determine cache directory", "error", err)
		return PageLookupResult{}, errors.WithDetailf(ErrPageNotFound,
			"no page found for %q", name)
	}

	var paths []string

	// Platform-specific page first; common is consulted only if the
	// platform directory misses.
	if dir, ok := c.platform.DirName(); ok {
		platformPath := filepath.Join(pagesDir, dir, pageFilename)
		if isFile(platformPath) {
			paths = append(paths, platformPath)
		}
	}
	if len(paths) == 0 {
		commonPath := filepath.Join(pagesDir, commonDirName, pageFilename)
		if isFile(commonPath) {
			paths = append(paths, commonPath)
		}
	}

	// Custom page is additive regardless of the above.
	customPath := filepath.Join(c.customPagesDir(pagesDir), pageFilename)
	if isFile(customPath) {
		paths = append(paths, customPath)
	}

	if len(paths) == 0 {
		return PageLookupResult{}, errors.WithDetailf(ErrPageNotFound,
			"no page found for %q", name)
	}
	return PageLookupResult{Paths: paths}, nil
}

// isFile reports whether path exists and is a regular file.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
