package commands

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/dbrgn/tealdeer/internal/cache"
	clierrors "github.com/dbrgn/tealdeer/internal/errors"
	"github.com/dbrgn/tealdeer/internal/render"
)

// runSearch opens a fuzzy finder over all pages for the current platform
// and renders the selected page.
func runSearch(c *cache.Cache, renderer *render.Renderer) error {
	pages, err := c.ListPages()
	if err != nil {
		return clierrors.NewSystemError(err, "Run 'tldr --update' to populate the cache")
	}
	if len(pages) == 0 {
		return clierrors.NewUserError(
			errors.New("no pages in cache"),
			"Run 'tldr --update' to populate the cache")
	}

	idx, err := fuzzyfinder.Find(
		pages,
		func(i int) string {
			return pages[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, width, height int) string {
			if i < 0 {
				return ""
			}
			return pagePreview(c, pages[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			// user cancelled, not an error
			return nil
		}
		return clierrors.NewSystemError(err, "")
	}

	result, err := c.FindPages(pages[idx])
	if err != nil {
		return clierrors.NewSystemError(err, "")
	}
	return renderer.Render(result)
}

// pagePreview returns the raw markdown of a page for the finder's
// preview pane. Errors just blank the pane.
func pagePreview(c *cache.Cache, name string) string {
	result, err := c.FindPages(name)
	if err != nil {
		return ""
	}
	r, err := result.Reader()
	if err != nil {
		return ""
	}
	defer r.Close()

	content, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	return string(content)
}
