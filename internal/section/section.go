// Package section splits source files into sections:
// runs of commentary paired with the code that follows them.
//
// Sectioning is a single pass over the lines of a file.
// Each line is classified as a comment, code, or blank line,
// and a new section starts whenever a comment follows code.
//
//	// Package foo does things.     <- section 1, doc
//	package foo                     <- section 1, code
//
//	// Bar is a thing.              <- section 2, doc
//	type Bar struct{}               <- section 2, code
//
// Blank lines count as code, but they never start a section.
// A run of blank lines is attached to whichever side it borders:
// blank lines between two comments stay in the commentary
// (as paragraph breaks) unless code has already been seen,
// and blank lines before code belong to the code.
package section

import (
	"strings"

	"go.abhg.dev/litdoc/internal/language"
)

// Section is a run of commentary and the code it documents.
type Section struct {
	// DocLines are the comment lines of this section
	// with their comment markers removed.
	//
	// DocLines is empty only for the first section of a file
	// if the file starts with code.
	DocLines []string

	// CodeLines are the code lines of this section, verbatim.
	//
	// CodeLines is empty only for the last section of a file
	// if the file ends with commentary.
	CodeLines []string

	// Start and End are the half-open range of 0-indexed source lines
	// that this section was built from.
	//
	// End - Start == len(DocLines) + len(CodeLines).
	Start, End int
}

// Doc returns the commentary of this section as a single string.
func (s *Section) Doc() string {
	return strings.Join(s.DocLines, "\n")
}

// Code returns the code of this section as a single string.
func (s *Section) Code() string {
	return strings.Join(s.CodeLines, "\n")
}

// Split splits source text into sections
// using the comment syntax of the given language.
func Split(src string, lang *language.Language) []Section {
	return SplitLines(Lines(src), lang)
}

// Lines splits text into lines.
//
// Both "\n" and "\r\n" end a line.
// A trailing newline does not produce an empty final line.
func Lines(src string) []string {
	if len(src) == 0 {
		return nil
	}

	lines := strings.Split(src, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// SplitLines splits the lines of a source file into sections
// using the comment syntax of the given language.
//
// Every line ends up in exactly one section,
// and sections are returned in source order.
func SplitLines(lines []string, lang *language.Language) []Section {
	sc := scanner{lang: lang}
	var b builder
	for i, line := range lines {
		kind, text := sc.Classify(i, line)
		switch kind {
		case blankLine:
			b.blanks = append(b.blanks, line)

		case docLine:
			if b.hasCode() {
				b.blanksToCode()
				b.next()
			} else {
				b.blanksToDoc()
			}
			b.cur.DocLines = append(b.cur.DocLines, text)

		case codeLine:
			b.blanksToCode()
			b.cur.CodeLines = append(b.cur.CodeLines, line)
		}
	}

	// Trailing blank lines stay with commentary
	// only if the last section is all commentary.
	if len(b.cur.DocLines) > 0 && !b.hasCode() {
		b.blanksToDoc()
	} else {
		b.blanksToCode()
	}
	b.next()
	return b.sections
}

// builder accumulates sections.
type builder struct {
	sections []Section
	cur      Section

	// Blank lines seen since the last non-blank line.
	// Where they go depends on the next non-blank line.
	blanks []string
}

func (b *builder) hasCode() bool {
	return len(b.cur.CodeLines) > 0
}

func (b *builder) blanksToCode() {
	b.cur.CodeLines = append(b.cur.CodeLines, b.blanks...)
	b.blanks = b.blanks[:0]
}

func (b *builder) blanksToDoc() {
	for range b.blanks {
		b.cur.DocLines = append(b.cur.DocLines, "")
	}
	b.blanks = b.blanks[:0]
}

// next closes the current section, if it's non-empty,
// and starts a new one.
func (b *builder) next() {
	n := len(b.cur.DocLines) + len(b.cur.CodeLines)
	if n == 0 {
		return
	}

	b.cur.End = b.cur.Start + n
	b.sections = append(b.sections, b.cur)
	b.cur = Section{Start: b.cur.End}
}
