package flagvalue

import (
	"fmt"
	"strings"

	"braces.dev/errtrace"
)

// List is a flag.Getter that collects every instance of a repeated flag.
//
// Each instance may hold several comma-separated values,
// so the following are equivalent:
//
//	-ext .pyw=python -ext .h=c
//	-ext .pyw=python,.h=c
//
// This also lets a single environment variable
// or configuration file line set multiple values.
type List[T any, PT Getter[T]] []T

// ListOf adapts a slice to accept repeated instances of a flag.
//
//	flag.Var(flagvalue.ListOf(&items), "item", ...)
func ListOf[T any, PT Getter[T]](vs *[]T) *List[T, PT] {
	return (*List[T, PT])(vs)
}

// Get returns the values recorded so far.
func (lv *List[T, PT]) Get() any { return []T(*lv) }

// String joins the values with commas,
// in the same form accepted by Set.
func (lv *List[T, PT]) String() string {
	items := make([]string, len(*lv))
	for i := range *lv {
		items[i] = PT(&(*lv)[i]).String()
	}
	return strings.Join(items, ",")
}

// Set parses one instance of the flag and appends its values.
// Empty items are ignored.
// If any item fails to parse, nothing is appended.
func (lv *List[T, PT]) Set(s string) error {
	var values []T
	for _, item := range strings.Split(s, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}

		var v T
		if err := PT(&v).Set(item); err != nil {
			return errtrace.Wrap(fmt.Errorf("%q: %w", item, err))
		}
		values = append(values, v)
	}
	*lv = append(*lv, values...)
	return nil
}
