package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecoder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want string
	}{
		{give: "", want: "utf-8"},
		{give: "utf-8", want: "utf-8"},
		{give: "UTF8", want: "utf-8"},
		{give: "latin1", want: "windows-1252"},
		{give: "shift_jis", want: "shift_jis"},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			d, err := NewDecoder(tt.give)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
		})
	}
}

func TestNewDecoder_unknown(t *testing.T) {
	t.Parallel()

	_, err := NewDecoder("no-such-encoding")
	assert.ErrorContains(t, err, `encoding "no-such-encoding"`)
}

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc     string
		encoding string
		give     []byte
		want     string
	}{
		{
			desc:     "utf-8",
			encoding: "utf-8",
			give:     []byte("# héllo\n"),
			want:     "# héllo\n",
		},
		{
			desc:     "utf-8 with BOM",
			encoding: "utf-8",
			give:     []byte("\xef\xbb\xbf# hi\n"),
			want:     "# hi\n",
		},
		{
			desc:     "latin1",
			encoding: "latin1",
			give:     []byte("# caf\xe9\n"),
			want:     "# café\n",
		},
		{
			desc:     "utf-16 BOM overrides",
			encoding: "latin1",
			give:     []byte("\xff\xfe#\x00 \x00a\x00"),
			want:     "# a",
		},
		{
			desc:     "invalid utf-8 is replaced",
			encoding: "utf-8",
			give:     []byte("a\xffb"),
			want:     "a�b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			d, err := NewDecoder(tt.encoding)
			require.NoError(t, err)

			got, err := d.Decode(tt.give)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
