package language

import (
	_ "embed"
	"errors"
	"io"
	"strings"
	"sync"

	"braces.dev/errtrace"
	"go.abhg.dev/litdoc/internal/must"
	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var _builtinLanguages string

var _default = sync.OnceValue(func() *Registry {
	langs := must.Value(Parse(strings.NewReader(_builtinLanguages)))
	r, err := NewRegistry(langs...)
	must.NotErrorf(err, "build built-in language registry")
	return r
})

// Default returns a registry holding the built-in languages.
func Default() *Registry {
	return _default()
}

// languageSpec is the on-disk representation of a [Language].
type languageSpec struct {
	Name         string   `yaml:"name"`
	Extensions   []string `yaml:"extensions"`
	LineComment  string   `yaml:"line_comment"`
	EncodingDecl bool     `yaml:"encoding_declaration"`
	BlockComment *struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"block_comment"`
}

// Parse reads a list of languages in YAML form.
//
//   - name: python
//     extensions: [.py]
//     line_comment: "#"
//     block_comment: {start: '"""', end: '"""'}
//
// Parse validates each language, but does not check for conflicts
// between them; [NewRegistry] does that.
func Parse(r io.Reader) ([]*Language, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var specs []languageSpec
	if err := dec.Decode(&specs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errtrace.Wrap(err)
	}

	langs := make([]*Language, len(specs))
	for i, spec := range specs {
		l := Language{
			Name:        spec.Name,
			Extensions:  spec.Extensions,
			LineComment: spec.LineComment,

			EncodingDeclaration: spec.EncodingDecl,
		}
		if bc := spec.BlockComment; bc != nil {
			l.BlockComment = &BlockComment{Start: bc.Start, End: bc.End}
		}
		for j, ext := range l.Extensions {
			l.Extensions[j] = normalizeExt(ext)
		}
		if err := l.validate(); err != nil {
			return nil, errtrace.Wrap(err)
		}
		langs[i] = &l
	}
	return langs, nil
}
