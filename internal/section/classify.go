package section

import (
	"regexp"
	"strings"

	"go.abhg.dev/litdoc/internal/language"
)

type lineKind int

const (
	codeLine lineKind = iota
	docLine
	blankLine
)

func (k lineKind) String() string {
	switch k {
	case codeLine:
		return "code"
	case docLine:
		return "doc"
	case blankLine:
		return "blank"
	default:
		return "unknown"
	}
}

// Encoding declarations (PEP 263 and friends) may appear
// in the first two lines of a file
// for languages that support them.
// They're comments, but they aren't documentation.
//
//	# -*- coding: utf-8 -*-
//	# vim: set fileencoding=utf-8 :
//	# encoding: utf-8
var _encodingDecl = regexp.MustCompile(`(?:^|[^a-zA-Z])(?:file)?(?:en)?coding[:=][ \t]*[-_.a-zA-Z0-9]+`)

// scanner classifies lines of a single file.
//
// It tracks block comments that span multiple lines,
// and block delimiters that were opened inside code
// (e.g. Python's triple-quoted strings).
type scanner struct {
	lang *language.Language

	inBlock     bool     // inside a block comment
	inCodeBlock bool     // inside a block opened by a code line
	star        starMode // whether block comment lines use " * " prefixes
	indent      string   // indentation of the line that opened the block
}

// starMode records whether lines of a block comment
// are prefixed with "*":
//
//	/*
//	 * Like this.
//	 */
type starMode int

const (
	starUnknown starMode = iota // decided by the first line after the opener
	starYes
	starNo
)

// Classify reports the kind of the i-th line of a file.
// For doc lines, it also returns the text of the line
// with comment markers removed.
//
// Classify must be called on lines in order.
func (s *scanner) Classify(i int, line string) (lineKind, string) {
	trimmed := strings.TrimLeft(line, " \t")
	bc := s.lang.BlockComment

	switch {
	case s.inBlock:
		return s.blockLine(line)

	case s.inCodeBlock:
		// Delimiters that close and reopen on one line
		// leave the block open.
		if strings.Count(line, bc.End)%2 == 1 {
			s.inCodeBlock = false
		}
		return codeLine, ""

	case i == 0 && strings.HasPrefix(line, "#!"):
		// Shebang.
		return codeLine, ""

	case len(strings.TrimSpace(line)) == 0:
		return blankLine, ""

	case i < 2 && s.lang.EncodingDeclaration && s.isComment(trimmed) && _encodingDecl.MatchString(line):
		return codeLine, ""

	case bc != nil && strings.HasPrefix(trimmed, bc.Start):
		return s.openBlock(line, trimmed)

	case s.isLineComment(trimmed):
		return docLine, stripSpace(trimmed[len(s.lang.LineComment):])

	default:
		if bc != nil && opensBlock(line, bc) {
			s.inCodeBlock = true
		}
		return codeLine, ""
	}
}

func (s *scanner) isLineComment(trimmed string) bool {
	lc := s.lang.LineComment
	return len(lc) > 0 && strings.HasPrefix(trimmed, lc)
}

func (s *scanner) isComment(trimmed string) bool {
	if s.isLineComment(trimmed) {
		return true
	}
	bc := s.lang.BlockComment
	return bc != nil && strings.HasPrefix(trimmed, bc.Start)
}

// openBlock handles a line that starts with a block comment opener.
func (s *scanner) openBlock(line, trimmed string) (lineKind, string) {
	bc := s.lang.BlockComment
	rest := trimmed[len(bc.Start):]

	// "/**" starts a block where every line is prefixed with " * ".
	starred := strings.HasSuffix(bc.Start, "*") &&
		strings.HasPrefix(rest, "*") &&
		!strings.HasPrefix(rest, bc.End)
	if starred {
		rest = rest[1:]
	}

	if idx := strings.Index(rest, bc.End); idx >= 0 {
		// Opens and closes on the same line.
		// If there's anything after the closing delimiter,
		// this is code with a comment in it:
		//
		//	/* size */ int n = 42;
		tail := rest[idx+len(bc.End):]
		if len(strings.TrimSpace(tail)) > 0 {
			if opensBlock(tail, bc) {
				s.inCodeBlock = true
			}
			return codeLine, ""
		}
		return docLine, stripSpace(strings.TrimRight(rest[:idx], " \t"))
	}

	s.inBlock = true
	s.star = starUnknown
	if starred {
		s.star = starYes
	} else if !strings.HasSuffix(bc.Start, "*") {
		s.star = starNo
	}
	s.indent = line[:len(line)-len(trimmed)]
	return docLine, stripSpace(strings.TrimRight(rest, " \t"))
}

// blockLine handles a line inside a block comment,
// closing the block if the line holds the closing delimiter.
//
// A line with code after the closing delimiter is code:
//
//	/* Size of
//	   the buffer. */ int n = 42;
func (s *scanner) blockLine(line string) (lineKind, string) {
	bc := s.lang.BlockComment
	closing := false
	if idx := strings.Index(line, bc.End); idx >= 0 {
		s.inBlock = false
		closing = true

		tail := line[idx+len(bc.End):]
		if len(strings.TrimSpace(tail)) > 0 {
			if opensBlock(tail, bc) {
				s.inCodeBlock = true
			}
			return codeLine, ""
		}
		line = line[:idx]
	}

	line = strings.TrimPrefix(line, s.indent)
	t := strings.TrimLeft(line, " \t")
	if s.star == starUnknown && len(t) > 0 {
		s.star = starNo
		if strings.HasPrefix(t, "*") {
			s.star = starYes
		}
	}
	if s.star == starYes && strings.HasPrefix(t, "*") {
		line = stripSpace(t[1:])
	}
	if closing {
		line = strings.TrimRight(line, " \t")
	}
	return docLine, line
}

// opensBlock reports whether the given line of code
// leaves a block delimiter open at its end.
//
// Only symmetric delimiters are tracked inside code.
// These double as string quotes (Python's """),
// and a closing quote at the start of a line
// would otherwise be mistaken for the start of a comment.
// Lines inside an asymmetric block opened mid-line
// are classified as code anyway.
func opensBlock(line string, bc *language.BlockComment) bool {
	return bc.Start == bc.End && strings.Count(line, bc.Start)%2 == 1
}

// stripSpace drops a single leading space, if any.
func stripSpace(s string) string {
	return strings.TrimPrefix(s, " ")
}
