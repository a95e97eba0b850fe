package cache

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dbrgn/tealdeer/internal/logging"
)

// extract unpacks a gzip-compressed tar stream into dir. Decompression is
// streamed entry by entry, never fully materialized. On failure the
// directory may be left partially populated.
func (c *Cache) extract(r io.Reader, dir string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return wrapUpdateError(err, "could not decompress archive")
	}
	defer gz.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return wrapUpdateError(err, "could not create cache directory")
	}

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return wrapUpdateError(err, "could not unpack archive")
		}

		if err := c.writeEntry(tr, header, dir); err != nil {
			return err
		}
	}

	return nil
}

// writeEntry materializes a single archive entry below dir.
func (c *Cache) writeEntry(tr *tar.Reader, header *tar.Header, dir string) error {
	target, err := securePath(dir, header.Name)
	if err != nil {
		return err
	}

	switch header.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(target, 0o755); err != nil {
			return wrapUpdateError(err, "could not create directory from archive")
		}
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return wrapUpdateError(err, "could not create directory from archive")
		}
		if err := writeFileEntry(tr, header, target); err != nil {
			return err
		}
	case tar.TypeXGlobalHeader:
		// git archives carry the commit id in a pax global header; nothing
		// to write.
	default:
		return newUpdateErrorf("unsupported archive entry %q (type %d)",
			header.Name, header.Typeflag)
	}

	c.logger.Log(context.Background(), logging.LevelTrace, "extracted archive entry", "name", header.Name)
	return nil
}

// writeFileEntry copies one regular file out of the archive.
func writeFileEntry(tr *tar.Reader, header *tar.Header, target string) error {
	mode := os.FileMode(header.Mode).Perm()
	if mode == 0 {
		mode = 0o644
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return wrapUpdateError(err, "could not create file from archive")
	}

	if _, err := io.Copy(f, tr); err != nil {
		f.Close()
		return wrapUpdateError(err, "could not write file from archive")
	}

	if err := f.Close(); err != nil {
		return wrapUpdateError(err, "could not close file from archive")
	}
	return nil
}

// securePath joins an archive entry name onto dir, rejecting entries that
// would escape it (path traversal or absolute names).
func securePath(dir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.Join(dir, filepath.FromSlash(name)))
	if cleaned != dir && !strings.HasPrefix(cleaned, dir+string(os.PathSeparator)) {
		return "", newUpdateErrorf("archive entry %q escapes the cache directory", name)
	}
	return cleaned, nil
}
