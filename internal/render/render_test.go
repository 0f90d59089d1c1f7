package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/litdoc/internal/language"
	"go.abhg.dev/litdoc/internal/section"
)

type fakeMarkup struct{ fail string }

func (m fakeMarkup) RenderMarkup(src string) (string, error) {
	if m.fail != "" && strings.Contains(src, m.fail) {
		return "", errors.New("bad markup")
	}
	return "<p>" + src + "</p>", nil
}

type fakeHighlighter struct {
	fail  string
	langs []string
}

func (h *fakeHighlighter) Highlight(code, lang string) (string, error) {
	h.langs = append(h.langs, lang)
	if h.fail != "" && strings.Contains(code, h.fail) {
		return "", errors.New("bad code")
	}
	return "<pre>" + code + "</pre>", nil
}

var _python = &language.Language{
	Name:        "python",
	Extensions:  []string{".py"},
	LineComment: "#",
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	var hl fakeHighlighter
	r := Renderer{Markup: fakeMarkup{}, Highlighter: &hl}

	got, err := r.Render("foo.py", _python, []section.Section{
		{DocLines: []string{"Hello", "world"}, CodeLines: []string{"x = 1"}},
		{DocLines: []string{"Bye"}, CodeLines: []string{"", "y = 2", "", ""}},
		{DocLines: []string{"Only docs"}},
		{CodeLines: []string{"", ""}},
	})
	require.NoError(t, err)

	assert.Equal(t, []Section{
		{Index: 1, DocHTML: "<p>Hello\nworld</p>", CodeHTML: "<pre>x = 1</pre>"},
		{Index: 2, DocHTML: "<p>Bye</p>", CodeHTML: "<pre>y = 2</pre>"},
		{Index: 3, DocHTML: "<p>Only docs</p>"},
		{Index: 4},
	}, got)
	assert.Equal(t, []string{"python", "python"}, hl.langs)
}

func TestRenderer_Render_empty(t *testing.T) {
	t.Parallel()

	r := Renderer{Markup: fakeMarkup{}, Highlighter: new(fakeHighlighter)}
	got, err := r.Render("empty.py", _python, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRenderer_Render_failures(t *testing.T) {
	t.Parallel()

	r := Renderer{
		Markup:      fakeMarkup{fail: "BAD"},
		Highlighter: &fakeHighlighter{fail: "BROKEN"},
	}

	got, err := r.Render("foo.py", _python, []section.Section{
		{DocLines: []string{"fine"}, CodeLines: []string{"a = 1"}},
		{DocLines: []string{"BAD"}, CodeLines: []string{"b = 2"}},
		{DocLines: []string{"fine"}, CodeLines: []string{"BROKEN"}},
		{DocLines: []string{"also fine"}, CodeLines: []string{"c = 3"}},
	})
	require.Error(t, err)
	require.Len(t, got, 4)

	t.Run("successful sections", func(t *testing.T) {
		assert.Equal(t, Section{Index: 1, DocHTML: "<p>fine</p>", CodeHTML: "<pre>a = 1</pre>"}, got[0])
		assert.Equal(t, Section{Index: 4, DocHTML: "<p>also fine</p>", CodeHTML: "<pre>c = 3</pre>"}, got[3])
	})

	t.Run("failed sections", func(t *testing.T) {
		for _, idx := range []int{1, 2} {
			sec := got[idx]
			assert.Equal(t, idx+1, sec.Index)
			assert.Error(t, sec.Err)
			assert.Empty(t, sec.DocHTML, "no partial HTML")
			assert.Empty(t, sec.CodeHTML, "no partial HTML")
		}
	})

	t.Run("error", func(t *testing.T) {
		var serr *SectionError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "foo.py", serr.File)
		assert.Equal(t, 2, serr.Index)

		assert.ErrorContains(t, err, "foo.py: section 2: render commentary: bad markup")
		assert.ErrorContains(t, err, "foo.py: section 3: highlight code: bad code")
	})
}

func TestTrimBlank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give []string
		want []string
	}{
		{give: nil, want: nil},
		{give: []string{"", "  "}, want: []string{}},
		{give: []string{"a"}, want: []string{"a"}},
		{give: []string{"", "a", "", "b", "\t"}, want: []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		got := trimBlank(tt.give)
		assert.Equal(t, len(tt.want), len(got), "trimBlank(%q)", tt.give)
		if len(tt.want) > 0 {
			assert.Equal(t, tt.want, got)
		}
	}
}
