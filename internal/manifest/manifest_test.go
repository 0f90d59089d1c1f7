package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/litdoc/internal/language"
)

var _python = &language.Language{Name: "python", Extensions: []string{".py"}, LineComment: "#"}

func entry(input string) *Entry {
	return &Entry{
		InputPath:  input,
		OutputPath: OutputPath(input),
		Language:   _python,
	}
}

func outputs(m *Manifest) []string {
	var out []string
	for _, e := range m.Entries() {
		out = append(out, e.OutputPath)
	}
	return out
}

func TestNew(t *testing.T) {
	t.Parallel()

	m, err := New([]*Entry{
		entry("lib/z.py"),
		entry("b.py"),
		entry("a.py"),
		entry("lib/a.py"),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, m.Len())
	assert.Equal(t, []string{"a.html", "b.html", "lib/a.html", "lib/z.html"}, outputs(m))

	t.Run("ByInput", func(t *testing.T) {
		e, ok := m.ByInput("lib/z.py")
		require.True(t, ok)
		assert.Equal(t, "lib/z.html", e.OutputPath)

		e, ok = m.ByInput("./lib/../lib/z.py")
		require.True(t, ok, "cleaned")
		assert.Equal(t, "lib/z.html", e.OutputPath)

		_, ok = m.ByInput("c.py")
		assert.False(t, ok)
	})

	t.Run("ByOutput", func(t *testing.T) {
		e, ok := m.ByOutput("b.html")
		require.True(t, ok)
		assert.Equal(t, "b.py", e.InputPath)

		_, ok = m.ByOutput("b.py")
		assert.False(t, ok)
	})
}

func TestNew_doesNotModifyInput(t *testing.T) {
	t.Parallel()

	give := []*Entry{entry("b.py"), entry("a.py")}
	_, err := New(give)
	require.NoError(t, err)
	assert.Equal(t, "b.py", give[0].InputPath)
}

func TestNew_collision(t *testing.T) {
	t.Parallel()

	_, err := New([]*Entry{
		entry("foo.py"),
		{InputPath: "foo.rb", OutputPath: "foo.html"},
	})
	require.Error(t, err)

	var cerr *CollisionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "foo.html", cerr.OutputPath)
	assert.ElementsMatch(t, []string{"foo.py", "foo.rb"}, cerr.Inputs[:])
	assert.ErrorContains(t, err, `would both be written to "foo.html"`)
}

func TestNew_duplicateInput(t *testing.T) {
	t.Parallel()

	_, err := New([]*Entry{
		entry("foo.py"),
		{InputPath: "foo.py", OutputPath: "other.html"},
	})
	assert.ErrorContains(t, err, `"foo.py" was specified more than once`)
}

func TestManifest_zero(t *testing.T) {
	t.Parallel()

	var m Manifest
	assert.Zero(t, m.Len())
	assert.Empty(t, m.Entries())
	_, ok := m.ByInput("a.py")
	assert.False(t, ok)
}

func TestManifest_Filter(t *testing.T) {
	t.Parallel()

	m, err := New([]*Entry{entry("c.py"), entry("a.py"), entry("b.py")})
	require.NoError(t, err)

	got := m.Filter(func(e *Entry) bool { return e.InputPath != "b.py" })
	assert.Equal(t, []string{"a.html", "c.html"}, outputs(got))

	_, ok := got.ByInput("b.py")
	assert.False(t, ok)
	_, ok = got.ByOutput("c.html")
	assert.True(t, ok)

	assert.Equal(t, 3, m.Len(), "original unchanged")
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want string
	}{
		{"foo.py", "foo.html"},
		{"lib/foo.py", "lib/foo.html"},
		{"./lib/foo.tar.gz", "lib/foo.tar.html"},
		{"Makefile", "Makefile.html"},
		{".bashrc", ".bashrc.html"},
		{"conf/.bashrc", "conf/.bashrc.html"},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, OutputPath(tt.give))
		})
	}
}
