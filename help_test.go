package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_Write(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give    Help
		wantErr string
	}{
		{give: "usage"},
		{give: "default"},
		{give: "config"},
		{give: "frontmatter"},
		{give: "languages"},
		{give: "links"},
		{give: "template"},
		{
			give:    "not-a-topic",
			wantErr: `unknown help topic "not-a-topic": valid values`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.give.String(), func(t *testing.T) {
			t.Parallel()

			err := tt.give.Write(io.Discard)
			if len(tt.wantErr) > 0 {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.False(t, tt.give.Known())
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.give.Known())
			}
		})
	}
}

func TestHelp_noHelp(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	require.NoError(t, NoHelp.Write(&buff))
	assert.Empty(t, buff.String())
}

func TestHelp_Set(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want Help
	}{
		{give: "true", want: DefaultHelp},
		{give: "false", want: NoHelp},
		{give: " Config ", want: "config"},
	}

	for _, tt := range tests {
		var h Help
		require.NoError(t, h.Set(tt.give))
		assert.Equal(t, tt.want, h, "Set(%q)", tt.give)
		assert.Equal(t, tt.want, h.Get())
	}
}

func TestUsageHelp(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	require.NoError(t, UsageHelp.Write(&buff))
	assert.Equal(t, "usage: litdoc [options] file or directory ...\n", buff.String())
}
