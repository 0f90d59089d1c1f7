// Package html assembles rendered sections into HTML pages.
package html

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"
	"strings"
	"sync"
	ttemplate "text/template"

	"braces.dev/errtrace"
	"go.abhg.dev/litdoc/internal/highlight"
	"go.abhg.dev/litdoc/internal/pathtree"
	"go.abhg.dev/litdoc/internal/relative"
	"go.abhg.dev/litdoc/internal/render"
)

var (
	//go:embed tmpl/*.html
	_tmplFS embed.FS

	//go:embed static/litdoc.css
	_defaultCSS string

	// Trick borrowed from pkgsite:
	// Unusable function references at parse time,
	// and then Clone and replace at render time.
	// This way, template validity is still
	// verified at init.
	_pageTmpl = template.Must(
		template.New("page.html").
			Funcs((*pageRender)(nil).FuncMap()).
			ParseFS(_tmplFS, "tmpl/page.html", "tmpl/layout.html"),
	)

	_indexTmpl = template.Must(
		template.New("index.html").
			Funcs((*pageRender)(nil).FuncMap()).
			ParseFS(_tmplFS, "tmpl/index.html", "tmpl/layout.html"),
	)
)

// Highlighter renders code blocks into HTML.
type Highlighter interface {
	Render(*highlight.Code) string
	WriteCSS(io.Writer) error
}

var _ Highlighter = (*highlight.Highlighter)(nil)

// Renderer assembles pages.
// It is safe for concurrent use once configured.
type Renderer struct {
	// Whether we're in embedded mode.
	// In this mode, output will only contain the documentation output
	// and will not generate complete, stylized HTML pages.
	Embedded bool

	// FrontMatter to include at the top of each file, if any.
	FrontMatter *ttemplate.Template

	// Layout overrides parts of the built-in templates, if set.
	Layout *Layout

	// CSS replaces the built-in stylesheet if non-empty.
	// Highlighting styles are always appended.
	CSS string

	// Highlighter renders error blocks and provides
	// the stylesheet for highlighted code.
	Highlighter Highlighter // required

	cssOnce sync.Once
	css     template.CSS
	cssErr  error
}

func (r *Renderer) templateName() string {
	if r.Embedded {
		return "Body"
	}
	return "Page"
}

// stylesheet builds the inlined stylesheet once.
func (r *Renderer) stylesheet() (template.CSS, error) {
	r.cssOnce.Do(func() {
		var buf bytes.Buffer
		css := r.CSS
		if css == "" {
			css = _defaultCSS
		}
		buf.WriteString(css)
		buf.WriteString("\n")
		if err := r.Highlighter.WriteCSS(&buf); err != nil {
			r.cssErr = errtrace.Wrap(fmt.Errorf("highlighter stylesheet: %w", err))
			return
		}
		// Stylesheets are trusted input:
		// either built-in or specified by the user.
		r.css = template.CSS(buf.String())
	})
	return r.css, r.cssErr
}

// Layout holds user-provided templates
// layered on top of the built-in ones.
//
// A layout may redefine any of the following templates:
//
//	Page   complete HTML document
//	Body   contents of <body>
//	Nav    list of links to other pages
//	Main   the sections of a page, or the list of files
//	Title  contents of <title>
type Layout struct {
	page  *template.Template
	index *template.Template
}

// ParseLayout parses a template that overrides parts of the built-in
// layout.
func ParseLayout(name, text string) (*Layout, error) {
	page, err := template.Must(_pageTmpl.Clone()).New(name).Parse(text)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	index, err := template.Must(_indexTmpl.Clone()).New(name).Parse(text)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	return &Layout{page: page, index: index}, nil
}

func (r *Renderer) pageTemplate() *template.Template {
	if r.Layout != nil {
		return r.Layout.page
	}
	return _pageTmpl
}

func (r *Renderer) indexTemplate() *template.Template {
	if r.Layout != nil {
		return r.Layout.index
	}
	return _indexTmpl
}

type frontmatterData struct {
	Path     string
	Title    string
	Language string
}

func (r *Renderer) renderFrontmatter(w io.Writer, d frontmatterData) error {
	if r.FrontMatter == nil {
		return nil
	}

	var buff bytes.Buffer
	if err := r.FrontMatter.Execute(&buff, d); err != nil {
		return errtrace.Wrap(fmt.Errorf("frontmatter: %w", err))
	}

	bs := bytes.TrimSpace(buff.Bytes())
	if len(bs) == 0 {
		return nil
	}
	bs = append(bs, '\n', '\n')

	_, err := w.Write(bs)
	return errtrace.Wrap(err)
}

// NavItem is an entry in the list of generated pages.
type NavItem struct {
	// Text for the link.
	// This is the path of the source file.
	Text string

	// Path to the page from the root of the output.
	Path string
}

// Page is a single documented source file.
type Page struct {
	// Path to this page from the root of the output,
	// /-separated.
	Path string

	// Title of the page.
	Title string

	// Language the source file is written in.
	Language string

	// Sections of the file, in order.
	Sections []render.Section

	// Files lists all generated pages, including this one,
	// in the order they should be presented.
	Files []NavItem
}

// RenderPage renders a single page.
func (r *Renderer) RenderPage(w io.Writer, page *Page) error {
	err := r.renderFrontmatter(w, frontmatterData{
		Path:     page.Path,
		Title:    page.Title,
		Language: page.Language,
	})
	if err != nil {
		return errtrace.Wrap(err)
	}

	return errtrace.Wrap(r.execute(w, r.pageTemplate(), page.Path, page))
}

// Index is an overview of all generated pages.
type Index struct {
	// Path to the index from the root of the output,
	// /-separated.
	Path string

	// Title of the index.
	Title string

	// Files lists all generated pages.
	Files []NavItem
}

// RenderIndex renders an overview listing all pages
// organized by directory.
func (r *Renderer) RenderIndex(w io.Writer, idx *Index) error {
	err := r.renderFrontmatter(w, frontmatterData{
		Path:  idx.Path,
		Title: idx.Title,
	})
	if err != nil {
		return errtrace.Wrap(err)
	}

	return errtrace.Wrap(r.execute(w, r.indexTemplate(), idx.Path, idx))
}

func (r *Renderer) execute(w io.Writer, tmpl *template.Template, pagePath string, data any) error {
	render := pageRender{
		Path:        pagePath,
		Highlighter: r.Highlighter,
	}
	if !r.Embedded {
		css, err := r.stylesheet()
		if err != nil {
			return errtrace.Wrap(err)
		}
		render.CSS = css
	}

	// Render into a buffer so that a failing template
	// doesn't leave a half-written page behind.
	var buf bytes.Buffer
	err := template.Must(tmpl.Clone()).
		Funcs(render.FuncMap()).
		ExecuteTemplate(&buf, r.templateName(), data)
	if err != nil {
		return errtrace.Wrap(err)
	}

	_, err = buf.WriteTo(w)
	return errtrace.Wrap(err)
}

type pageRender struct {
	Path        string
	CSS         template.CSS
	Highlighter Highlighter
}

func (r *pageRender) FuncMap() template.FuncMap {
	return template.FuncMap{
		"relativePath": r.relativePath,
		"stylesheet":   r.stylesheet,
		"sectionError": r.sectionError,
		"trusted":      trusted,
		"tree":         tree,
		"base":         path.Base,
	}
}

func (r *pageRender) relativePath(p string) string {
	return relative.File(r.Path, p)
}

func (r *pageRender) stylesheet() template.CSS {
	return r.CSS
}

func (r *pageRender) sectionError(sec render.Section) template.HTML {
	msg := fmt.Sprintf("Section %d could not be rendered", sec.Index)
	return template.HTML(r.Highlighter.Render(&highlight.Code{
		Spans: []highlight.Span{
			&highlight.ErrorSpan{Msg: msg, Err: sec.Err},
		},
	}))
}

// trusted marks HTML produced by the markup renderer
// or the highlighter as safe.
func trusted(s string) template.HTML {
	return template.HTML(s)
}

type fileTree = pathtree.Snapshot[NavItem]

func tree(files []NavItem) []fileTree {
	var root pathtree.Root[NavItem]
	for _, f := range files {
		root.Set(strings.TrimPrefix(f.Text, "/"), f)
	}
	return root.Snapshot()
}
