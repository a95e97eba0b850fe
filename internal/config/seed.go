package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/dbrgn/tealdeer/pkg/fileutil"
)

// ErrConfigExists is returned by Seed when the target file already exists.
var ErrConfigExists = errors.New("config file already exists")

// Seed writes the default configuration to config.toml inside dir,
// creating the directory if needed. An existing file is never overwritten.
// Returns the path of the written file.
func Seed(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "creating config directory")
	}

	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return "", errors.WithDetailf(ErrConfigExists, "delete %s first to re-seed", path)
	}

	if err := fileutil.AtomicWriteTOML(path, Default()); err != nil {
		return "", errors.Wrap(err, "writing default config")
	}

	return path, nil
}
