package highlight

import (
	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Lexer analyzes source code and generates a stream of tokens.
type Lexer interface {
	Lex(src string) ([]chroma.Token, error)
}

// LexerFor returns a [Lexer] for the language with the given name.
//
// Languages that Chroma doesn't know are lexed as plain text,
// so their code is still escaped, just not colored.
// The second return value reports whether a real lexer was found.
func LexerFor(name string) (Lexer, bool) {
	l := lexers.Get(name)
	found := l != nil
	if !found {
		l = lexers.Fallback
	}
	return &chromaLexer{l: chroma.Coalesce(l)}, found
}

// chromaLexer builds a [Lexer] from a Chroma lexer.
type chromaLexer struct{ l chroma.Lexer }

// Lex lexically analyzes the given source code using Chroma.
func (cl *chromaLexer) Lex(src string) ([]chroma.Token, error) {
	return chroma.Tokenise(cl.l, nil, src)
}
