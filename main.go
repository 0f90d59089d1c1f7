// litdoc generates side-by-side HTML documentation
// from the comments in source files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	ttemplate "text/template"

	"braces.dev/errtrace"
	"go.abhg.dev/litdoc/internal/highlight"
	"go.abhg.dev/litdoc/internal/html"
	"go.abhg.dev/litdoc/internal/language"
	"go.abhg.dev/litdoc/internal/markup"
	"go.abhg.dev/litdoc/internal/pagefind"
	"go.abhg.dev/litdoc/internal/source"
)

// _version is overwritten at build time.
var _version = "dev"

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	log *log.Logger
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.run(ctx, opts); err != nil {
		cmd.log.Printf("litdoc: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(ctx context.Context, opts *params) (err error) {
	debugw, closeDebug, err := opts.Debug.Create(cmd.Stderr)
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("open debug log: %w", err))
	}
	defer func() {
		err = errors.Join(err, closeDebug())
	}()
	var debugLog *log.Logger
	if opts.Debug.Bool() {
		debugLog = log.New(debugw, "", 0)
	}

	registry, err := loadRegistry(opts)
	if err != nil {
		return errtrace.Wrap(err)
	}

	if opts.languages {
		return errtrace.Wrap(printLanguages(cmd.Stdout, registry))
	}

	decoder, err := source.NewDecoder(opts.Encoding)
	if err != nil {
		return errtrace.Wrap(err)
	}

	style, ok := highlight.Style(opts.Style)
	if !ok {
		return errtrace.Errorf("unknown highlighting style %q", opts.Style)
	}
	highlighter := &highlight.Highlighter{
		Style:      style,
		UseClasses: true,
	}

	renderer := html.Renderer{
		Embedded:    opts.Embed,
		Highlighter: highlighter,
	}
	if len(opts.Frontmatter) > 0 {
		fmtmpl, err := ttemplate.New("frontmatter").Parse(opts.Frontmatter)
		if err != nil {
			return errtrace.Wrap(fmt.Errorf("bad frontmatter template: %w", err))
		}
		renderer.FrontMatter = fmtmpl
	}
	if len(opts.Template) > 0 {
		bs, err := os.ReadFile(opts.Template)
		if err != nil {
			return errtrace.Wrap(err)
		}
		layout, err := html.ParseLayout(opts.Template, string(bs))
		if err != nil {
			return errtrace.Wrap(fmt.Errorf("bad layout template: %w", err))
		}
		renderer.Layout = layout
	}
	if len(opts.CSS) > 0 {
		bs, err := os.ReadFile(opts.CSS)
		if err != nil {
			return errtrace.Wrap(err)
		}
		renderer.CSS = string(bs)
	}

	gen := Generator{
		Log:          cmd.log,
		DebugLog:     debugLog,
		Registry:     registry,
		Decoder:      decoder,
		Markup:       markup.New(markup.Options{UnsafeHTML: opts.UnsafeHTML}),
		Highlighter:  highlighter,
		Renderer:     &renderer,
		OutDir:       opts.OutputDir,
		Root:         opts.Root,
		Jobs:         opts.Jobs,
		SkipBadFiles: opts.SkipBadFiles,
		FailFast:     opts.FailFast,
		Index:        opts.Index,
	}

	generate := func() error {
		report, err := gen.Generate(ctx, opts.Inputs)
		for _, ferr := range report.Failed {
			cmd.log.Printf("Failed: %v", ferr)
		}
		if err != nil {
			return errtrace.Wrap(err)
		}
		cmd.log.Printf("Generated %d pages in %v", len(report.Generated), opts.OutputDir)

		if opts.Pagefind.Bool() {
			cli := pagefind.CLI{Log: debugLog}
			if exe, ok := opts.Pagefind.Value(); ok {
				cli.Pagefind = exe
			}
			if err := cli.Index(ctx, pagefind.IndexRequest{
				SiteDir: opts.OutputDir,
				Pages:   report.SectionPages(),
			}); err != nil {
				return errtrace.Wrap(err)
			}
		}

		if n := len(report.Failed); n > 0 {
			return errtrace.Errorf("%d of %d files failed", n, n+len(report.Generated))
		}
		return nil
	}

	err = generate()
	if !opts.Watch {
		return errtrace.Wrap(err)
	}
	if err != nil {
		cmd.log.Printf("litdoc: %v", err)
	}

	cmd.log.Printf("Watching for changes. Press Ctrl+C to stop.")
	w := watcher{
		Log:    cmd.log,
		Ignore: []string{opts.OutputDir},
	}
	return errtrace.Wrap(w.Watch(ctx, opts.Inputs, func(changed []string) {
		gen.debugf("Changed: %v", strings.Join(changed, ", "))
		if err := generate(); err != nil {
			cmd.log.Printf("litdoc: %v", err)
		}
	}))
}

// loadRegistry builds the language registry
// from the built-in languages and user-provided definitions.
func loadRegistry(opts *params) (*language.Registry, error) {
	registry := language.Default()

	for _, path := range opts.LanguageFiles {
		langs, err := readLanguageFile(string(path))
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		registry, err = registry.With(langs...)
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("%v: %w", path, err))
		}
	}

	for _, ext := range opts.Extensions {
		var err error
		registry, err = registry.Alias(ext.Key, ext.Value)
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("-ext %v: %w", ext.String(), err))
		}
	}

	return registry, nil
}

func readLanguageFile(path string) ([]*language.Language, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	defer func() { _ = f.Close() }()

	langs, err := language.Parse(f)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("%v: %w", path, err))
	}
	return langs, nil
}

func printLanguages(w io.Writer, registry *language.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEXTENSIONS\tCOMMENTS")
	for _, lang := range registry.Languages() {
		var comments []string
		if lang.LineComment != "" {
			comments = append(comments, lang.LineComment)
		}
		if bc := lang.BlockComment; bc != nil {
			comments = append(comments, bc.Start+" "+bc.End)
		}
		fmt.Fprintf(tw, "%v\t%v\t%v\n",
			lang.Name,
			strings.Join(lang.Extensions, " "),
			strings.Join(comments, ", "))
	}
	return errtrace.Wrap(tw.Flush())
}
