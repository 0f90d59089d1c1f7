// Package manifest tracks the pages generated in a single run.
//
// A manifest is built once, before any page is written,
// and is read-only afterwards.
// Every page links to every other page through it.
package manifest

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/litdoc/internal/language"
)

// Entry is a single source file and the page generated for it.
type Entry struct {
	// InputPath is the path to the source file
	// relative to the project root, /-separated.
	InputPath string

	// OutputPath is the path to the generated page
	// relative to the output directory, /-separated.
	OutputPath string

	// Language of the source file.
	Language *language.Language
}

// Manifest is an ordered list of entries.
// Entries are sorted by output path.
//
// The zero value is an empty manifest.
type Manifest struct {
	entries  []*Entry
	byInput  map[string]*Entry
	byOutput map[string]*Entry
}

// CollisionError reports that two source files
// would be written to the same page.
type CollisionError struct {
	OutputPath string
	Inputs     [2]string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%q and %q would both be written to %q",
		e.Inputs[0], e.Inputs[1], e.OutputPath)
}

// New builds a manifest from the given entries.
// It fails if two entries share an input path or an output path.
func New(entries []*Entry) (*Manifest, error) {
	m := Manifest{
		entries:  slices.Clone(entries),
		byInput:  make(map[string]*Entry, len(entries)),
		byOutput: make(map[string]*Entry, len(entries)),
	}
	slices.SortFunc(m.entries, func(a, b *Entry) int {
		return strings.Compare(a.OutputPath, b.OutputPath)
	})

	for _, e := range m.entries {
		if other, ok := m.byOutput[e.OutputPath]; ok {
			return nil, errtrace.Wrap(&CollisionError{
				OutputPath: e.OutputPath,
				Inputs:     [2]string{other.InputPath, e.InputPath},
			})
		}
		if _, ok := m.byInput[e.InputPath]; ok {
			return nil, errtrace.Errorf("%q was specified more than once", e.InputPath)
		}
		m.byOutput[e.OutputPath] = e
		m.byInput[e.InputPath] = e
	}

	return &m, nil
}

// Len reports the number of entries in the manifest.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Entries returns the entries of the manifest in order.
// The returned slice must not be modified.
func (m *Manifest) Entries() []*Entry {
	return m.entries
}

// ByInput finds the entry for a source file.
func (m *Manifest) ByInput(p string) (*Entry, bool) {
	e, ok := m.byInput[path.Clean(p)]
	return e, ok
}

// ByOutput finds the entry for a page.
func (m *Manifest) ByOutput(p string) (*Entry, bool) {
	e, ok := m.byOutput[path.Clean(p)]
	return e, ok
}

// Filter returns a new manifest holding only the entries
// for which keep reports true, in the same order.
func (m *Manifest) Filter(keep func(*Entry) bool) *Manifest {
	out := Manifest{
		byInput:  make(map[string]*Entry),
		byOutput: make(map[string]*Entry),
	}
	for _, e := range m.entries {
		if !keep(e) {
			continue
		}
		out.entries = append(out.entries, e)
		out.byInput[e.InputPath] = e
		out.byOutput[e.OutputPath] = e
	}
	return &out
}

// OutputPath computes the page path for a source file:
// the same path with the extension replaced by ".html".
//
//	OutputPath("lib/foo.py") == "lib/foo.html"
//	OutputPath("Makefile")   == "Makefile.html"
//	OutputPath(".bashrc")    == ".bashrc.html"
func OutputPath(input string) string {
	input = path.Clean(input)
	if ext := path.Ext(input); ext != path.Base(input) {
		input = strings.TrimSuffix(input, ext)
	}
	return input + ".html"
}
