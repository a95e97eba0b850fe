package cache

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbrgn/tealdeer/internal/logging"
	"github.com/dbrgn/tealdeer/internal/platform"
)

// newTestCache builds a cache rooted in a fresh temp directory and returns
// both. The temp directory doubles as the override, so it always exists.
func newTestCache(t *testing.T, pf platform.Platform, custom string) (*Cache, string) {
	t.Helper()
	root := t.TempDir()
	c := New(Settings{
		CacheDir:       root,
		CustomPagesDir: custom,
	}, pf, logging.ForTest(t))
	return c, root
}

// writePage creates <root>/tldr-master/pages/<dir>/<name>.md.
func writePage(t *testing.T, root, dir, name string) string {
	t.Helper()
	path := filepath.Join(root, "tldr-master", "pages", dir, name+".md")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# "+name+"\n"), 0o644))
	return path
}

// writeCustomPage creates <dir>/<name>.md.
func writeCustomPage(t *testing.T, dir, name string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name+".md")
	require.NoError(t, os.WriteFile(path, []byte("custom "+name+"\n"), 0o644))
	return path
}

func TestFindPagesPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		platform bool
		common   bool
		custom   bool
		// want is the expected source order; each entry is one of
		// "platform", "common", "custom".
		want []string
	}{
		{"platform and custom", true, true, true, []string{"platform", "custom"}},
		{"platform only", true, false, false, []string{"platform"}},
		{"platform beats common", true, true, false, []string{"platform"}},
		{"common and custom", false, true, true, []string{"common", "custom"}},
		{"common only", false, true, false, []string{"common"}},
		{"custom only", false, false, true, []string{"custom"}},
		{"nothing", false, false, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customDir := filepath.Join(t.TempDir(), "custom")
			c, root := newTestCache(t, platform.Linux, customDir)

			sources := map[string]string{}
			if tt.platform {
				sources["platform"] = writePage(t, root, "linux", "tar")
			}
			if tt.common {
				sources["common"] = writePage(t, root, "common", "tar")
			}
			if tt.custom {
				sources["custom"] = writeCustomPage(t, customDir, "tar")
			}

			result, err := c.FindPages("tar")
			if tt.want == nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrPageNotFound))
				return
			}
			require.NoError(t, err)

			want := make([]string, len(tt.want))
			for i, src := range tt.want {
				want[i] = sources[src]
			}
			assert.Equal(t, want, result.Paths)
		})
	}
}

func TestFindPagesUnmappedPlatformUsesCommon(t *testing.T) {
	c, root := newTestCache(t, platform.Other, "")
	writePage(t, root, "linux", "tar")
	common := writePage(t, root, "common", "tar")

	result, err := c.FindPages("tar")
	require.NoError(t, err)
	assert.Equal(t, []string{common}, result.Paths)
}

func TestFindPagesDefaultCustomDir(t *testing.T) {
	// Without an override, the custom dir is pages.custom next to the
	// pages tree.
	c, root := newTestCache(t, platform.Linux, "")
	customDir := filepath.Join(root, "tldr-master", "pages.custom")
	custom := writeCustomPage(t, customDir, "tar")

	result, err := c.FindPages("tar")
	require.NoError(t, err)
	assert.Equal(t, []string{custom}, result.Paths)
}

func TestFindPagesProgression(t *testing.T) {
	// Start with only a common page, then add a platform page, then a
	// custom page, checking precedence at each step.
	customDir := filepath.Join(t.TempDir(), "custom")
	c, root := newTestCache(t, platform.Linux, customDir)

	common := writePage(t, root, "common", "tar")
	result, err := c.FindPages("tar")
	require.NoError(t, err)
	assert.Equal(t, []string{common}, result.Paths)

	linux := writePage(t, root, "linux", "tar")
	result, err = c.FindPages("tar")
	require.NoError(t, err)
	assert.Equal(t, []string{linux}, result.Paths)

	custom := writeCustomPage(t, customDir, "tar")
	result, err = c.FindPages("tar")
	require.NoError(t, err)
	assert.Equal(t, []string{linux, custom}, result.Paths)
}

func TestFindPagesDirectoryIsNotAPage(t *testing.T) {
	c, root := newTestCache(t, platform.Linux, "")
	dir := filepath.Join(root, "tldr-master", "pages", "linux", "tar.md")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	_, err := c.FindPages("tar")
	assert.True(t, errors.Is(err, ErrPageNotFound))
}

func TestFindPagesBadCacheRootSurfacesAsNotFound(t *testing.T) {
	c := New(Settings{
		CacheDir: filepath.Join(t.TempDir(), "does-not-exist"),
	}, platform.Linux, logging.ForTest(t))

	_, err := c.FindPages("tar")
	require.Error(t, err)
	// The caller cannot distinguish "no cache" from "no page" here.
	assert.True(t, errors.Is(err, ErrPageNotFound))
}

func TestPageLookupResultReader(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.md")
	second := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(first, []byte("first"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("second\n"), 0o644))

	r, err := PageLookupResult{Paths: []string{first, second}}.Reader()
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestPageLookupResultReaderMissingFile(t *testing.T) {
	_, err := PageLookupResult{
		Paths: []string{filepath.Join(t.TempDir(), "gone.md")},
	}.Reader()
	assert.Error(t, err)
}
