// Package flagvalue provides flag.Value implementations.
package flagvalue

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

// Getter is a constraint satisfied by pointers to types
// which implement flag.Getter.
type Getter[T any] interface {
	*T
	flag.Getter
}

// String is a flag.Getter for plain strings.
// Use it with [ListOf] to accept a flag more than once.
type String string

var _ flag.Getter = (*String)(nil)

// Get returns the string.
func (sv *String) Get() any { return string(*sv) }

// String returns the string.
func (sv *String) String() string { return string(*sv) }

// Set receives a command line value.
func (sv *String) Set(s string) error {
	*sv = String(s)
	return nil
}

// Pair is a flag.Getter for arguments in the form "key=value".
type Pair struct {
	Key   string
	Value string
}

var _ flag.Getter = (*Pair)(nil)

// Get returns the pair.
func (p *Pair) Get() any { return *p }

// String returns the pair in the form "key=value".
func (p *Pair) String() string {
	return fmt.Sprintf("%s=%s", p.Key, p.Value)
}

// Set receives a command line value.
// Both sides of the "=" must be non-empty.
func (p *Pair) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if !ok || key == "" || value == "" {
		return errors.New("expected form 'key=value'")
	}
	p.Key = key
	p.Value = value
	return nil
}
