// Package render turns the sections of a source file into HTML fragments.
//
// Commentary is rendered with a [MarkupRenderer]
// and code with a [Highlighter].
// A failure in one section doesn't stop the others from rendering.
package render

import (
	"errors"
	"fmt"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/litdoc/internal/language"
	"go.abhg.dev/litdoc/internal/section"
)

// MarkupRenderer renders commentary into HTML.
type MarkupRenderer interface {
	RenderMarkup(src string) (string, error)
}

// Highlighter renders code in a language into HTML.
type Highlighter interface {
	Highlight(code, lang string) (string, error)
}

// Section is a section of a source file rendered into HTML.
type Section struct {
	// Index is the 1-based position of the section in the file.
	Index int

	DocHTML  string
	CodeHTML string

	// Err is non-nil if the section could not be rendered.
	// DocHTML and CodeHTML are empty in that case.
	Err error
}

// SectionError reports that a section of a file failed to render.
type SectionError struct {
	File  string
	Index int // 1-based
	Err   error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("%v: section %d: %v", e.File, e.Index, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

// Renderer renders sections into HTML.
type Renderer struct {
	Markup      MarkupRenderer // required
	Highlighter Highlighter    // required
}

// Render renders the given sections of file, written in lang.
//
// All sections are returned even if some fail.
// The returned error, if any, joins one *SectionError per failed section.
func (r *Renderer) Render(file string, lang *language.Language, secs []section.Section) ([]Section, error) {
	out := make([]Section, len(secs))
	var errs []error
	for i, sec := range secs {
		out[i] = Section{Index: i + 1}

		doc, code, err := r.renderSection(lang, sec)
		if err != nil {
			serr := &SectionError{File: file, Index: i + 1, Err: err}
			out[i].Err = serr
			errs = append(errs, serr)
			continue
		}
		out[i].DocHTML = doc
		out[i].CodeHTML = code
	}
	return out, errtrace.Wrap(errors.Join(errs...))
}

func (r *Renderer) renderSection(lang *language.Language, sec section.Section) (doc, code string, err error) {
	if len(sec.DocLines) > 0 {
		doc, err = r.Markup.RenderMarkup(sec.Doc())
		if err != nil {
			return "", "", errtrace.Wrap(fmt.Errorf("render commentary: %w", err))
		}
	}

	if lines := trimBlank(sec.CodeLines); len(lines) > 0 {
		code, err = r.Highlighter.Highlight(strings.Join(lines, "\n"), lang.Name)
		if err != nil {
			return "", "", errtrace.Wrap(fmt.Errorf("highlight code: %w", err))
		}
	}

	return doc, code, nil
}

// trimBlank drops leading and trailing blank lines.
func trimBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
