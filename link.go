package main

import (
	"log"
	"path"
	"strings"

	"go.abhg.dev/litdoc/internal/manifest"
	"go.abhg.dev/litdoc/internal/markup"
	"go.abhg.dev/litdoc/internal/relative"
)

// pageLinker resolves wiki links in the commentary of a single page
// to other pages in the manifest.
type pageLinker struct {
	// Entry of the page being rendered.
	From *manifest.Entry

	Manifest *manifest.Manifest

	// DebugLog receives links that could not be resolved.
	DebugLog *log.Logger
}

var _ markup.Linker = (*pageLinker)(nil)

// WikiLinkURL resolves a link target in the form "path[#fragment]".
//
// The path is looked up relative to the directory of the current file
// first, and then relative to the root.
func (l *pageLinker) WikiLinkURL(target string) (string, bool) {
	target, frag, _ := strings.Cut(target, "#")

	var candidates []string
	if target == "" {
		// [[#section-2]] links within the same page.
		candidates = append(candidates, l.From.InputPath)
	} else {
		if dir := path.Dir(l.From.InputPath); dir != "." && !strings.HasPrefix(target, "/") {
			candidates = append(candidates, path.Join(dir, target))
		}
		candidates = append(candidates, path.Clean(strings.TrimPrefix(target, "/")))
	}

	for _, c := range candidates {
		e, ok := l.Manifest.ByInput(c)
		if !ok {
			continue
		}

		url := relative.File(l.From.OutputPath, e.OutputPath)
		if frag != "" {
			url += "#" + frag
		}
		return url, true
	}

	if l.DebugLog != nil {
		l.DebugLog.Printf("%v: unresolved link to %q", l.From.InputPath, target)
	}
	return "", false
}
