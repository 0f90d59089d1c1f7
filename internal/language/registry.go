package language

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"braces.dev/errtrace"
)

// Registry is an immutable index of languages by file extension.
//
// Every extension maps to exactly one language.
// The zero value is an empty registry.
type Registry struct {
	byExt map[string]*Language
	langs []*Language // sorted by name
}

// NewRegistry builds a registry from the given languages.
// It fails if a language is invalid,
// or if two languages claim the same extension.
func NewRegistry(langs ...*Language) (*Registry, error) {
	r := Registry{
		byExt: make(map[string]*Language),
		langs: make([]*Language, 0, len(langs)),
	}
	for _, l := range langs {
		if err := l.validate(); err != nil {
			return nil, errtrace.Wrap(err)
		}

		for _, ext := range l.Extensions {
			ext = normalizeExt(ext)
			if other, ok := r.byExt[ext]; ok && other != l {
				return nil, errtrace.Errorf("extension %q is claimed by both %q and %q", ext, other.Name, l.Name)
			}
			r.byExt[ext] = l
		}
		r.langs = append(r.langs, l)
	}
	slices.SortStableFunc(r.langs, func(a, b *Language) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return &r, nil
}

// Lookup returns the language for the given extension.
// The extension may be specified with or without the leading ".".
//
// Returns an [UnsupportedLanguageError] if the extension is not known.
func (r *Registry) Lookup(ext string) (*Language, error) {
	ext = normalizeExt(ext)
	if l, ok := r.byExt[ext]; ok {
		return l, nil
	}
	return nil, errtrace.Wrap(&UnsupportedLanguageError{Ext: ext})
}

// LookupPath returns the language for the file at the given path.
func (r *Registry) LookupPath(path string) (*Language, error) {
	l, err := r.Lookup(filepath.Ext(path))
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("%v: %w", path, err))
	}
	return l, nil
}

// Languages returns all languages in this registry, sorted by name.
func (r *Registry) Languages() []*Language {
	return slices.Clone(r.langs)
}

// Language returns the language with the given name, if any.
// Names are compared case-insensitively.
func (r *Registry) Language(name string) (*Language, bool) {
	for _, l := range r.langs {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return nil, false
}

// With returns a copy of this registry with the given languages added.
//
// If a new language claims an extension that was already registered,
// the new language takes over that extension.
// The receiver is left unchanged.
func (r *Registry) With(langs ...*Language) (*Registry, error) {
	claimed := make(map[string]struct{})
	for _, l := range langs {
		for _, ext := range l.Extensions {
			claimed[normalizeExt(ext)] = struct{}{}
		}
	}

	merged := make([]*Language, 0, len(r.langs)+len(langs))
	for _, l := range r.langs {
		exts := slices.DeleteFunc(slices.Clone(l.Extensions), func(ext string) bool {
			_, ok := claimed[normalizeExt(ext)]
			return ok
		})
		switch {
		case len(exts) == 0:
			continue
		case len(exts) != len(l.Extensions):
			clone := *l
			clone.Extensions = exts
			l = &clone
		}
		merged = append(merged, l)
	}
	merged = append(merged, langs...)

	return errtrace.Wrap2(NewRegistry(merged...))
}

// Alias returns a copy of this registry
// where ext is handled by the language with the given name.
func (r *Registry) Alias(ext, name string) (*Registry, error) {
	l, ok := r.Language(name)
	if !ok {
		return nil, errtrace.Errorf("alias %v: unknown language %q", ext, name)
	}

	alias := *l
	alias.Extensions = append(slices.Clone(l.Extensions), normalizeExt(ext))
	return errtrace.Wrap2(r.With(&alias))
}
