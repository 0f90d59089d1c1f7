package markup

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var _linkerKey = parser.NewContextKey()

var (
	_wikiOpen  = []byte("[[")
	_wikiClose = []byte("]]")
)

// wikiLinkParser parses [[target]] and [[target|label]]
// into regular links.
type wikiLinkParser struct{}

var _ parser.InlineParser = (*wikiLinkParser)(nil)

func (*wikiLinkParser) Trigger() []byte {
	return []byte{'['}
}

func (*wikiLinkParser) Parse(_ ast.Node, block text.Reader, pc parser.Context) ast.Node {
	linker, _ := pc.Get(_linkerKey).(Linker)
	if linker == nil {
		return nil
	}

	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, _wikiOpen) {
		return nil
	}
	end := bytes.Index(line[len(_wikiOpen):], _wikiClose)
	if end < 0 {
		return nil
	}
	inner := string(line[len(_wikiOpen) : len(_wikiOpen)+end])
	if strings.ContainsAny(inner, "[]") {
		return nil
	}

	target, label := parseWikiLink(inner)
	if target == "" {
		return nil
	}

	dest, ok := linker.WikiLinkURL(target)
	if !ok {
		return nil
	}

	block.Advance(len(_wikiOpen) + end + len(_wikiClose))

	link := ast.NewLink()
	link.Destination = []byte(dest)
	link.AppendChild(link, ast.NewString([]byte(label)))
	return link
}

// parseWikiLink splits "target|label" into its parts.
// Without an explicit label, the target without its fragment is used.
func parseWikiLink(s string) (target, label string) {
	target, label, ok := strings.Cut(s, "|")
	target = strings.TrimSpace(target)
	label = strings.TrimSpace(label)
	if !ok || label == "" {
		label, _, _ = strings.Cut(target, "#")
	}
	return target, label
}
