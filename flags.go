package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3"
	"go.abhg.dev/litdoc/internal/flagvalue"
	"go.abhg.dev/litdoc/internal/source"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// _envPrefix is the prefix for environment variables
// that may be used in place of flags.
// For example, LITDOC_OUT for -out.
const _envPrefix = "LITDOC"

// params holds all arguments for litdoc.
type params struct {
	version   bool
	help      Help
	languages bool

	Debug flagvalue.FileSwitch

	OutputDir string
	Root      string
	Encoding  string

	Embed       bool
	Frontmatter string
	Template    string
	CSS         string
	Style       string
	Index       bool
	UnsafeHTML  bool

	LanguageFiles []flagvalue.String
	Extensions    []flagvalue.Pair

	SkipBadFiles bool
	FailFast     bool
	Jobs         int
	Watch        bool
	Pagefind     flagvalue.FileSwitch

	Inputs []string
}

// cliParser parses the command line arguments for litdoc.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("litdoc", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		_ = DefaultHelp.Write(cmd.Stderr)
	}

	var p params

	// Filesystem:
	flag.StringVar(&p.OutputDir, "out", "docs", "")
	flag.StringVar(&p.Root, "root", ".", "")
	flag.StringVar(&p.Encoding, "encoding", source.DefaultEncoding, "")

	// Languages:
	flag.Var(flagvalue.ListOf(&p.LanguageFiles), "lang-file", "")
	flag.Var(flagvalue.ListOf(&p.Extensions), "ext", "")
	flag.BoolVar(&p.languages, "languages", false, "")

	// HTML output:
	flag.BoolVar(&p.Embed, "embed", false, "")
	flag.StringVar(&p.Frontmatter, "frontmatter", "", "")
	flag.StringVar(&p.Template, "template", "", "")
	flag.StringVar(&p.CSS, "css", "", "")
	flag.StringVar(&p.Style, "style", "plain", "")
	flag.BoolVar(&p.Index, "index", false, "")
	flag.BoolVar(&p.UnsafeHTML, "unsafe-html", false, "")
	flag.Var(&p.Pagefind, "pagefind", "")

	// Execution:
	flag.BoolVar(&p.SkipBadFiles, "skip-bad-files", false, "")
	flag.BoolVar(&p.FailFast, "fail-fast", false, "")
	flag.IntVar(&p.Jobs, "jobs", 0, "")
	flag.BoolVar(&p.Watch, "watch", false, "")

	// Program-level:
	flag.String("config", "", "")
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()
	err := ff.Parse(flag, args,
		ff.WithEnvVarPrefix(_envPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		if !errors.Is(err, errHelp) {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, err
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "litdoc", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		var h Help
		if err := h.Set(args[0]); err == nil && h.Known() {
			p.help = h
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	if p.Jobs < 0 {
		fmt.Fprintln(cmd.Stderr, "-jobs must not be negative.")
		return nil, errInvalidArguments
	}

	p.Inputs = args
	if len(p.Inputs) == 0 && !p.languages {
		fmt.Fprintln(cmd.Stderr, "Please provide at least one file or directory.")
		_ = UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}

	return p, nil
}
