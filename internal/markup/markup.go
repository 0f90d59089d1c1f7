// Package markup renders commentary written in Markdown into HTML.
//
// In addition to CommonMark and GitHub Flavored Markdown,
// commentary may link to other documented files with wiki-style links:
//
//	See [[internal/parse.go]] for how lines are read,
//	or [[internal/parse.go#section-3|the tokenizer]].
//
// Wiki links are resolved by a [Linker].
// Links that can't be resolved are left as literal text.
package markup

import (
	"bytes"

	"braces.dev/errtrace"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Linker resolves the target of a wiki link to a URL.
type Linker interface {
	// WikiLinkURL returns the URL for the given link target,
	// or false if the target doesn't exist.
	WikiLinkURL(target string) (url string, ok bool)
}

// Options configure a [Renderer].
type Options struct {
	// UnsafeHTML allows raw HTML inside commentary
	// to be passed through to the output.
	//
	// By default, raw HTML is omitted.
	UnsafeHTML bool
}

// Renderer renders Markdown into HTML.
//
// A Renderer is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	linker Linker
}

// New builds a new Renderer.
func New(opts Options) *Renderer {
	var htmlOpts []goldmark.Option
	if opts.UnsafeHTML {
		htmlOpts = append(htmlOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	md := goldmark.New(append(htmlOpts,
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithInlineParsers(
				// Before the link parser (200)
				// so that "[[" isn't taken as a regular link.
				util.Prioritized(new(wikiLinkParser), 199),
			),
		),
	)...)
	return &Renderer{md: md}
}

// WithLinker returns a copy of this renderer
// that resolves wiki links with the given Linker.
func (r *Renderer) WithLinker(l Linker) *Renderer {
	out := *r
	out.linker = l
	return &out
}

// RenderMarkup renders the given Markdown text into HTML.
func (r *Renderer) RenderMarkup(src string) (string, error) {
	ctx := parser.NewContext()
	if r.linker != nil {
		ctx.Set(_linkerKey, r.linker)
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf, parser.WithContext(ctx)); err != nil {
		return "", errtrace.Wrap(err)
	}
	return buf.String(), nil
}
