// Package highlight provides support to highlight source code blocks.
// It uses the Chroma library to do this work.
//
// Source code is lexed with the Chroma lexer for its language
// and turned into a [Code] value, comprised of multiple [Span]s.
// Spans represent special rendering instructions,
// such as highlighted tokens, or a visible error message.
package highlight
