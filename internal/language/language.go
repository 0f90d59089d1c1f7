// Package language describes the comment syntax of the programming languages
// litdoc knows how to document.
//
// Languages are plain data.
// The built-in set is loaded from an embedded YAML file,
// and users may add their own with the same format.
// A [Registry] indexes a set of languages by file extension.
package language

import (
	"errors"
	"fmt"
	"strings"
)

// Language is the comment syntax of a single programming language.
type Language struct {
	// Name of the language.
	// This is passed to the syntax highlighter as-is.
	Name string

	// Extensions handled by this language, including the leading ".".
	Extensions []string

	// LineComment is the token that starts a single-line comment.
	// For example, "//" for Go, or "#" for Python.
	LineComment string

	// BlockComment is the pair of tokens that delimit
	// a comment spanning multiple lines, if any.
	BlockComment *BlockComment

	// EncodingDeclaration is set for languages where a comment
	// in the first two lines may declare the source encoding,
	// like Python's "# -*- coding: utf-8 -*-".
	// Such comments are treated as code.
	EncodingDeclaration bool
}

// BlockComment holds the delimiters of a multi-line comment.
type BlockComment struct {
	Start string
	End   string
}

func (l *Language) String() string {
	return l.Name
}

func (l *Language) validate() error {
	if l.Name == "" {
		return errors.New("language name is required")
	}
	if len(l.Extensions) == 0 {
		return fmt.Errorf("language %q: at least one extension is required", l.Name)
	}
	for _, ext := range l.Extensions {
		if normalizeExt(ext) == "" {
			return fmt.Errorf("language %q: extensions must not be empty", l.Name)
		}
	}
	if l.LineComment == "" && l.BlockComment == nil {
		return fmt.Errorf("language %q: one of line or block comment is required", l.Name)
	}
	if bc := l.BlockComment; bc != nil && (bc.Start == "" || bc.End == "") {
		return fmt.Errorf("language %q: block comment needs both start and end", l.Name)
	}
	return nil
}

// ErrUnsupportedLanguage is matched by errors returned
// when a file does not belong to any known language.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// UnsupportedLanguageError reports that no language
// was registered for a file extension.
type UnsupportedLanguageError struct {
	Ext string
}

func (e *UnsupportedLanguageError) Error() string {
	if e.Ext == "" {
		return "unsupported language: file has no extension"
	}
	return fmt.Sprintf("unsupported language: no language for extension %q", e.Ext)
}

// Is reports whether target is [ErrUnsupportedLanguage].
func (e *UnsupportedLanguageError) Is(target error) bool {
	return target == ErrUnsupportedLanguage
}

// normalizeExt turns "py", ".py", and ".PY" into ".py".
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
