// Package render prints resolved pages to the terminal. It consumes a page
// lookup result only: the files are opened in order and treated as one
// logical document stream.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"

	"github.com/dbrgn/tealdeer/internal/cache"
)

// Line styles for the page format: a title, quoted description lines,
// dashed example descriptions, and backticked or indented code.
var (
	titleStyle       = color.New(color.Bold)
	descriptionStyle = color.New(color.FgWhite)
	exampleStyle     = color.New(color.FgGreen)
	codeStyle        = color.New(color.FgCyan)
	variableStyle    = color.New(color.FgCyan, color.Italic)
)

// Options controls rendering behavior.
type Options struct {
	// Raw prints the page markdown untouched.
	Raw bool

	// Compact suppresses blank lines between snippets.
	Compact bool
}

// Renderer writes styled pages to a single output writer.
type Renderer struct {
	w    io.Writer
	opts Options
}

// New creates a Renderer writing to w.
func New(w io.Writer, opts Options) *Renderer {
	return &Renderer{w: w, opts: opts}
}

// Render prints the documents of a lookup result as one styled page.
func (r *Renderer) Render(result cache.PageLookupResult) error {
	reader, err := result.Reader()
	if err != nil {
		return err
	}
	defer reader.Close()

	if r.opts.Raw {
		if _, err := io.Copy(r.w, reader); err != nil {
			return errors.Wrap(err, "writing page")
		}
		return nil
	}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if err := r.renderLine(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading page")
	}
	return nil
}

// renderLine classifies a single markdown line and writes its styled form.
func (r *Renderer) renderLine(line string) error {
	var out string
	switch {
	case line == "":
		if r.opts.Compact {
			return nil
		}
		out = ""
	case strings.HasPrefix(line, "# "):
		out = titleStyle.Sprint(strings.TrimPrefix(line, "# "))
	case strings.HasPrefix(line, "> "):
		out = "  " + descriptionStyle.Sprint(strings.TrimPrefix(line, "> "))
	case strings.HasPrefix(line, "- "):
		out = "  " + exampleStyle.Sprint(strings.TrimPrefix(line, "- "))
	case strings.HasPrefix(line, "`") && strings.HasSuffix(line, "`") && len(line) >= 2:
		out = "    " + styleCode(strings.Trim(line, "`"))
	case strings.HasPrefix(line, "    "):
		out = "    " + styleCode(strings.TrimPrefix(line, "    "))
	default:
		out = line
	}

	if _, err := fmt.Fprintln(r.w, out); err != nil {
		return errors.Wrap(err, "writing page")
	}
	return nil
}

// styleCode styles a code line, highlighting {{placeholder}} segments
// without their braces.
func styleCode(code string) string {
	var b strings.Builder
	rest := code
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(rest[start:], "}}")
		if end == -1 {
			break
		}
		end += start

		b.WriteString(codeStyle.Sprint(rest[:start]))
		b.WriteString(variableStyle.Sprint(rest[start+2 : end]))
		rest = rest[end+2:]
	}
	b.WriteString(codeStyle.Sprint(rest))
	return b.String()
}
