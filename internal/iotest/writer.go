// Package iotest provides IO helpers for tests.
package iotest

import (
	"io"
	"testing"

	"go.abhg.dev/litdoc/internal/linebuf"
)

// Writer builds an io.Writer that logs to the given testing.TB
// one line at a time.
//
// Partial lines are flushed when the test finishes.
func Writer(t testing.TB) io.Writer {
	w, done := linebuf.Writer(func(line string) {
		t.Logf("%s", line)
	})
	t.Cleanup(done)
	return w
}
