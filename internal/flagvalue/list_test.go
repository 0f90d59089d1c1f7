package flagvalue

import (
	"errors"
	"flag"
	"io"
	"testing"

	"braces.dev/errtrace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc       string
		give       []string
		want       []String
		wantString string
	}{
		{
			desc: "no arguments",
			give: []string{"-y"},
		},
		{
			desc:       "separate",
			give:       []string{"-x", "foo"},
			want:       []String{"foo"},
			wantString: "foo",
		},
		{
			desc:       "joint",
			give:       []string{"-x=foo"},
			want:       []String{"foo"},
			wantString: "foo",
		},
		{
			desc:       "multiple",
			give:       []string{"-x", "foo", "-x=bar"},
			want:       []String{"foo", "bar"},
			wantString: "foo,bar",
		},
		{
			desc:       "interleaved",
			give:       []string{"-x", "foo", "-y", "-x=bar"},
			want:       []String{"foo", "bar"},
			wantString: "foo,bar",
		},
		{
			desc:       "comma separated",
			give:       []string{"-x", "foo,bar", "-x=baz"},
			want:       []String{"foo", "bar", "baz"},
			wantString: "foo,bar,baz",
		},
		{
			desc:       "empty items",
			give:       []string{"-x", ",foo,, ,bar,"},
			want:       []String{"foo", "bar"},
			wantString: "foo,bar",
		},
		{
			desc: "empty",
			give: []string{"-x="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)

			var got []String
			list := ListOf(&got)
			fset.Var(list, "x", "")
			_ = fset.Bool("y", false, "")
			require.NoError(t, fset.Parse(tt.give))

			assert.Equal(t, tt.want, got)

			assert.Equal(t, tt.want, list.Get(), "Get")
			assert.Equal(t, tt.wantString, list.String(), "String")
		})
	}
}

type fallibleStringValue string

var _ flag.Getter = (*fallibleStringValue)(nil)

func (sv *fallibleStringValue) Get() any       { return sv.String() }
func (sv *fallibleStringValue) String() string { return string(*sv) }

func (sv *fallibleStringValue) Set(s string) error {
	if s == "fail" {
		return errtrace.Wrap(errors.New("great sadness"))
	}
	*sv = fallibleStringValue(s)
	return nil
}

func TestList_error(t *testing.T) {
	t.Parallel()

	fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
	fset.SetOutput(io.Discard)

	var got []fallibleStringValue
	fset.Var(ListOf(&got), "x", "")

	err := fset.Parse([]string{"-x=foo", "-x=bar,fail", "-x", "baz"})
	assert.ErrorContains(t, err, `"fail": great sadness`)
	assert.Equal(t, []fallibleStringValue{"foo"}, got,
		"values before the failing item are dropped")
}

func TestList_pairs(t *testing.T) {
	t.Parallel()

	fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
	fset.SetOutput(io.Discard)

	var got []Pair
	fset.Var(ListOf(&got), "ext", "")

	require.NoError(t, fset.Parse([]string{"-ext", ".pyw=python", "-ext=.h = c,.hh=cpp"}))
	assert.Equal(t, []Pair{
		{Key: ".pyw", Value: "python"},
		{Key: ".h", Value: "c"},
		{Key: ".hh", Value: "cpp"},
	}, got)
	assert.Equal(t, ".pyw=python,.h=c,.hh=cpp", fset.Lookup("ext").Value.String())
}

func TestPair_Set_error(t *testing.T) {
	t.Parallel()

	for _, give := range []string{"", "foo", "=bar", "foo=", " = "} {
		var p Pair
		assert.ErrorContains(t, p.Set(give), "expected form 'key=value'", "Set(%q)", give)
	}
}
