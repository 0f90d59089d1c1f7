// Package source reads source files into text,
// decoding them from the encoding they were written in.
package source

import (
	"fmt"

	"braces.dev/errtrace"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is the encoding source files are assumed to be in
// unless specified otherwise.
const DefaultEncoding = "utf-8"

// Decoder turns the contents of source files into text.
//
// A byte order mark at the start of a file
// takes precedence over the configured encoding.
type Decoder struct {
	name string
	enc  encoding.Encoding
}

// NewDecoder builds a Decoder for the named encoding.
// Names are those of the WHATWG Encoding Standard,
// e.g. "utf-8", "latin1", "shift_jis".
func NewDecoder(name string) (*Decoder, error) {
	if name == "" {
		name = DefaultEncoding
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("encoding %q: %w", name, err))
	}

	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = name
	}
	return &Decoder{name: canonical, enc: enc}, nil
}

// Name is the canonical name of the encoding.
func (d *Decoder) Name() string {
	return d.name
}

// Decode decodes the given bytes into text.
func (d *Decoder) Decode(bs []byte) (string, error) {
	dec := unicode.BOMOverride(d.enc.NewDecoder())
	s, _, err := transform.String(dec, string(bs))
	if err != nil {
		return "", errtrace.Wrap(fmt.Errorf("decode %v: %w", d.name, err))
	}
	return s, nil
}
