// Package pagefind provides access to the pagefind CLI,
// which builds a static search index over generated pages.
//
// Only the contents of elements marked with data-pagefind-body
// are indexed, which for litdoc is the table of sections.
package pagefind

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/litdoc/internal/linebuf"
)

// CLI is a handle to the pagefind CLI,
// which is used to generate a search index for the documentation.
type CLI struct {
	// Pagefind is the path to the pagefind executable.
	// If unset, we'll search $PATH.
	Pagefind string

	// Log is the logger to use for the output of the pagefind command.
	Log *log.Logger
}

// IndexRequest is a request to generate a search index
// for a website.
type IndexRequest struct {
	// SiteDir is the path to the static website to index.
	SiteDir string // required

	// Path to the directory where pagefind assets are stored
	// relative to SiteDir.
	AssetSubdir string

	// Pages lists the pages to index, relative to SiteDir.
	// If empty, all HTML files are indexed.
	Pages []string
}

// Index generates a search index for a provided website.
func (c *CLI) Index(ctx context.Context, req IndexRequest) error {
	logger := c.Log
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	exe := c.Pagefind
	if exe == "" {
		exe = "pagefind"
	}

	args := []string{
		"--site", req.SiteDir, "--verbose",
	}
	if req.AssetSubdir != "" {
		args = append(args, "--output-subdir", req.AssetSubdir)
	}
	if glob := pageGlob(req.Pages); glob != "" {
		args = append(args, "--glob", glob)
	}

	out, done := linebuf.Writer(func(line string) {
		logger.Printf("pagefind: %s", line)
	})
	defer done()

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		return errtrace.Wrap(fmt.Errorf("pagefind: %w", err))
	}

	return nil
}

// pageGlob builds a glob matching exactly the given pages:
//
//	{a.html,lib/b.html}
//
// Paths that can't be spelled in a glob
// widen the match to all HTML files.
func pageGlob(pages []string) string {
	switch len(pages) {
	case 0:
		return ""
	case 1:
		if !strings.ContainsAny(pages[0], _globMeta) {
			return pages[0]
		}
		return _allPages
	}

	var sb strings.Builder
	sb.WriteString("{")
	for i, p := range pages {
		if strings.ContainsAny(p, _globMeta+",") {
			return _allPages
		}
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(p)
	}
	sb.WriteString("}")
	return sb.String()
}

const (
	_globMeta = `*?[]{}\!`
	_allPages = "**/*.html"
)
