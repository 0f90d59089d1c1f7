package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/litdoc/internal/errdefer"
	"go.abhg.dev/litdoc/internal/html"
	"go.abhg.dev/litdoc/internal/language"
	"go.abhg.dev/litdoc/internal/manifest"
	"go.abhg.dev/litdoc/internal/markup"
	"go.abhg.dev/litdoc/internal/pathx"
	"go.abhg.dev/litdoc/internal/relative"
	"go.abhg.dev/litdoc/internal/render"
	"go.abhg.dev/litdoc/internal/section"
	"go.abhg.dev/litdoc/internal/sliceutil"
	"go.abhg.dev/litdoc/internal/source"
	"golang.org/x/sync/errgroup"
)

// _indexPage is the output path of the optional index page.
const _indexPage = "index.html"

// PageRenderer assembles rendered sections into HTML pages.
type PageRenderer interface {
	RenderPage(io.Writer, *html.Page) error
	RenderIndex(io.Writer, *html.Index) error
}

var _ PageRenderer = (*html.Renderer)(nil)

// Generator generates documentation for source files.
//
// In terms of code organization,
// Generator's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Generator struct {
	Log      *log.Logger // required
	DebugLog *log.Logger // optional

	Registry    *language.Registry // required
	Decoder     *source.Decoder    // required
	Markup      *markup.Renderer   // required
	Highlighter render.Highlighter // required
	Renderer    PageRenderer       // required

	// OutDir is the directory pages are written to.
	OutDir string

	// Root is the directory that input paths are relative to.
	// Inputs outside Root are rejected.
	Root string

	// Jobs is the number of files processed in parallel.
	// Defaults to GOMAXPROCS.
	Jobs int

	// SkipBadFiles skips files in unsupported languages
	// instead of failing the run.
	SkipBadFiles bool

	// FailFast stops the run at the first file that fails.
	FailFast bool

	// Index also generates an index page listing all pages.
	Index bool
}

// Report summarizes a run of the generator.
type Report struct {
	// Generated lists the output paths of pages written,
	// relative to the output directory.
	Generated []string

	// IndexPage is the output path of the index page,
	// if one was written.
	IndexPage string

	// Skipped holds one error for each input that was skipped.
	Skipped []error

	// Failed holds one error for each file that could not be documented
	// or was documented only partially.
	Failed []error
}

// SectionPages lists the generated pages that document a source file,
// leaving out the index page.
func (r *Report) SectionPages() []string {
	pages := make([]string, 0, len(r.Generated))
	for _, p := range r.Generated {
		if r.IndexPage == "" || p != r.IndexPage {
			pages = append(pages, filepath.ToSlash(p))
		}
	}
	return pages
}

// fileError reports a failure to read, decode, or write a file.
type fileError struct {
	Path string
	Op   string // read, decode, write
	Err  error
}

func (e *fileError) Error() string {
	return fmt.Sprintf("%v %v: %v", e.Op, e.Path, e.Err)
}

func (e *fileError) Unwrap() error { return e.Err }

// sourceFile is a source file whose sections have been rendered.
type sourceFile struct {
	Entry    *manifest.Entry
	Sections []render.Section
}

// Generate documents the provided files and directories.
//
// The returned error is non-nil only if the run was aborted.
// Failures in individual files are recorded in the report.
func (g *Generator) Generate(ctx context.Context, inputs []string) (*Report, error) {
	var report Report

	files, err := g.findFiles(inputs)
	if err != nil {
		return &report, errtrace.Wrap(err)
	}

	candidates, skipped, err := g.plan(files)
	report.Skipped = skipped
	if err != nil {
		return &report, errtrace.Wrap(err)
	}
	g.debugf("Planned %d pages", candidates.Len())

	// Phase 1: read and render every file.
	// Wiki links are resolved against all candidates
	// since the final manifest isn't known until this phase ends.
	entries := candidates.Entries()
	pages := make([]*sourceFile, len(entries))
	failures := make([]error, len(entries))
	err = g.forEach(ctx, len(entries), func(i int) error {
		page, err := g.renderFile(entries[i], candidates)
		pages[i] = page
		failures[i] = err
		return err
	})
	if err != nil {
		report.Failed = nonNil(failures)
		return &report, errtrace.Wrap(err)
	}

	// Barrier: pages that failed to render at all
	// are left out of navigation.
	rendered := make(map[*manifest.Entry]struct{}, len(entries))
	for i, page := range pages {
		if page != nil {
			rendered[entries[i]] = struct{}{}
		}
	}
	final := candidates.Filter(func(e *manifest.Entry) bool {
		_, ok := rendered[e]
		return ok
	})
	nav := make([]html.NavItem, 0, final.Len())
	for _, e := range final.Entries() {
		nav = append(nav, html.NavItem{Text: e.InputPath, Path: e.OutputPath})
	}

	// Phase 2: assemble and write pages.
	written := make([]bool, len(entries))
	err = g.forEach(ctx, len(entries), func(i int) error {
		page := pages[i]
		if page == nil {
			return nil
		}
		if err := g.writePage(page, nav); err != nil {
			failures[i] = errors.Join(failures[i], err)
			return err
		}
		written[i] = true
		return nil
	})
	for i, e := range entries {
		if written[i] {
			report.Generated = append(report.Generated, e.OutputPath)
		}
	}
	report.Failed = nonNil(failures)
	if err != nil {
		return &report, errtrace.Wrap(err)
	}

	if g.Index {
		if err := g.writeIndex(nav); err != nil {
			return &report, errtrace.Wrap(err)
		}
		report.Generated = append(report.Generated, _indexPage)
		report.IndexPage = _indexPage
	}

	return &report, nil
}

// forEach runs fn for 0 to n-1 in parallel.
//
// Errors returned by fn are fatal only in fail-fast mode.
// Scheduling stops if ctx is canceled.
func (g *Generator) forEach(ctx context.Context, n int, fn func(int) error) error {
	jobs := g.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for i := 0; i < n; i++ {
		if egctx.Err() != nil {
			break
		}

		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return errtrace.Wrap(err)
			}
			if err := fn(i); err != nil && g.FailFast {
				return errtrace.Wrap(err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(ctx.Err())
}

// findFiles expands the inputs into a list of files.
// Directories are searched recursively for files in known languages.
func (g *Generator) findFiles(inputs []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		if !info.IsDir() {
			add(input)
			continue
		}

		err = filepath.WalkDir(input, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if p != input && pathx.Hidden(d.Name()) {
					return filepath.SkipDir
				}
				if pathx.Within(g.OutDir, p) {
					g.debugf("Skipping output directory %v", p)
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}
			if _, err := g.Registry.LookupPath(p); err != nil {
				g.debugf("Ignoring %v: %v", p, err)
				return nil
			}
			add(p)
			return nil
		})
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
	}

	return files, nil
}

// plan resolves the language and output path of every file
// and builds the manifest of candidate pages.
func (g *Generator) plan(files []string) (_ *manifest.Manifest, skipped []error, _ error) {
	root, err := filepath.Abs(g.Root)
	if err != nil {
		return nil, nil, errtrace.Wrap(err)
	}

	entries := make([]*manifest.Entry, 0, len(files))
	for _, file := range files {
		lang, err := g.Registry.LookupPath(file)
		if err != nil {
			if g.SkipBadFiles && errors.Is(err, language.ErrUnsupportedLanguage) {
				g.Log.Printf("Skipping %v", err)
				skipped = append(skipped, err)
				continue
			}
			return nil, skipped, errtrace.Wrap(err)
		}

		input, err := inputPath(root, file)
		if err != nil {
			return nil, skipped, errtrace.Wrap(err)
		}

		output := manifest.OutputPath(input)
		if g.Index && output == _indexPage {
			return nil, skipped, errtrace.Errorf("%v: page would overwrite the index page; rename the file or drop -index", file)
		}

		entries = append(entries, &manifest.Entry{
			InputPath:  input,
			OutputPath: output,
			Language:   lang,
		})
	}

	m, err := manifest.New(entries)
	if err != nil {
		return nil, skipped, errtrace.Wrap(err)
	}
	return m, skipped, nil
}

// inputPath returns the /-separated path to file relative to root.
func inputPath(root, file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", errtrace.Wrap(err)
	}

	rel := filepath.ToSlash(relative.Filepath(root, abs))
	if rel == "" || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", errtrace.Errorf("%v is not inside root directory %v", file, root)
	}
	return rel, nil
}

// renderFile reads, sectionizes, and renders a single file.
//
// If some sections failed to render,
// both a page and an error are returned.
func (g *Generator) renderFile(e *manifest.Entry, m *manifest.Manifest) (*sourceFile, error) {
	path := filepath.Join(g.Root, filepath.FromSlash(e.InputPath))
	g.debugf("Rendering %v", path)

	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errtrace.Wrap(&fileError{Path: e.InputPath, Op: "read", Err: err})
	}

	text, err := g.Decoder.Decode(bs)
	if err != nil {
		return nil, errtrace.Wrap(&fileError{Path: e.InputPath, Op: "decode", Err: err})
	}

	secs := section.Split(text, e.Language)
	renderer := render.Renderer{
		Markup: g.Markup.WithLinker(&pageLinker{
			From:     e,
			Manifest: m,
			DebugLog: g.DebugLog,
		}),
		Highlighter: g.Highlighter,
	}
	rsecs, err := renderer.Render(e.InputPath, e.Language, secs)
	return &sourceFile{Entry: e, Sections: rsecs}, errtrace.Wrap(err)
}

func (g *Generator) writePage(page *sourceFile, nav []html.NavItem) error {
	e := page.Entry
	dst := filepath.Join(g.OutDir, filepath.FromSlash(e.OutputPath))
	g.debugf("Writing %v", dst)

	err := writeFileAtomic(dst, func(w io.Writer) error {
		return g.Renderer.RenderPage(w, &html.Page{
			Path:     e.OutputPath,
			Title:    e.InputPath,
			Language: e.Language.Name,
			Sections: page.Sections,
			Files:    nav,
		})
	})
	if err != nil {
		return errtrace.Wrap(&fileError{Path: e.OutputPath, Op: "write", Err: err})
	}
	return nil
}

func (g *Generator) writeIndex(nav []html.NavItem) error {
	title := "Documentation"
	if root, err := filepath.Abs(g.Root); err == nil {
		title = filepath.Base(root)
	}

	dst := filepath.Join(g.OutDir, _indexPage)
	g.debugf("Writing %v", dst)
	err := writeFileAtomic(dst, func(w io.Writer) error {
		return g.Renderer.RenderIndex(w, &html.Index{
			Path:  _indexPage,
			Title: title,
			Files: nav,
		})
	})
	if err != nil {
		return errtrace.Wrap(&fileError{Path: _indexPage, Op: "write", Err: err})
	}
	return nil
}

func (g *Generator) debugf(format string, args ...any) {
	if g.DebugLog != nil {
		g.DebugLog.Printf(format, args...)
	}
}

// writeFileAtomic writes a file by writing to a temporary file
// in the same directory and renaming it into place.
// The file at path is never partially written.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errtrace.Wrap(err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Remove(&err, f.Name())

	if err := writeAndClose(f, write); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(os.Rename(f.Name(), path))
}

func writeAndClose(f *os.File, write func(io.Writer) error) (err error) {
	defer errdefer.Close(&err, f)

	if err := f.Chmod(0o644); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(write(f))
}

func nonNil(errs []error) []error {
	return sliceutil.Filter(errs, func(err error) bool { return err != nil })
}
