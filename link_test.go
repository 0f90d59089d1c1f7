package main

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/litdoc/internal/manifest"
)

func TestPageLinker(t *testing.T) {
	t.Parallel()

	m, err := manifest.New([]*manifest.Entry{
		{InputPath: "main.py", OutputPath: "main.html"},
		{InputPath: "lib/parse.py", OutputPath: "lib/parse.html"},
		{InputPath: "lib/util.py", OutputPath: "lib/util.html"},
		{InputPath: "lib/lib/deep.py", OutputPath: "lib/lib/deep.html"},
	})
	require.NoError(t, err)

	entry := func(p string) *manifest.Entry {
		e, ok := m.ByInput(p)
		require.True(t, ok, "entry %q", p)
		return e
	}

	tests := []struct {
		desc   string
		from   string
		target string
		want   string // empty if unresolved
	}{
		{desc: "root to root", from: "main.py", target: "main.py", want: "main.html"},
		{desc: "root to nested", from: "main.py", target: "lib/parse.py", want: "lib/parse.html"},
		{desc: "nested to root", from: "lib/parse.py", target: "main.py", want: "../main.html"},
		{desc: "sibling", from: "lib/parse.py", target: "util.py", want: "util.html"},
		{desc: "sibling from root path", from: "lib/parse.py", target: "lib/util.py", want: "util.html"},
		{desc: "relative preferred", from: "lib/parse.py", target: "lib/deep.py", want: "lib/deep.html"},
		{desc: "absolute", from: "lib/parse.py", target: "/main.py", want: "../main.html"},
		{desc: "dotdot", from: "lib/lib/deep.py", target: "../util.py", want: "../util.html"},
		{desc: "fragment", from: "main.py", target: "lib/util.py#section-3", want: "lib/util.html#section-3"},
		{desc: "same page fragment", from: "lib/util.py", target: "#section-2", want: "util.html#section-2"},
		{desc: "unknown", from: "main.py", target: "nope.py"},
		{desc: "unknown nested", from: "lib/parse.py", target: "parse.rb"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			var debug bytes.Buffer
			linker := pageLinker{
				From:     entry(tt.from),
				Manifest: m,
				DebugLog: log.New(&debug, "", 0),
			}

			got, ok := linker.WikiLinkURL(tt.target)
			if tt.want == "" {
				assert.False(t, ok, "got %q", got)
				assert.Contains(t, debug.String(), "unresolved link")
				return
			}

			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, debug.String())
		})
	}
}
