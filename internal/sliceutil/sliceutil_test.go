package sliceutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommonPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc       string
		give, with []string
		want       int
	}{
		{desc: "empty"},
		{desc: "empty a", with: []string{"a"}},
		{desc: "empty b", give: []string{"a"}},
		{desc: "equal", give: []string{"a", "b"}, with: []string{"a", "b"}, want: 2},
		{desc: "short a", give: []string{"a"}, with: []string{"a", "b"}, want: 1},
		{desc: "short b", give: []string{"a", "b", "c"}, with: []string{"a", "b"}, want: 2},
		{desc: "divergent", give: []string{"a", "b", "c"}, with: []string{"a", "x", "c"}, want: 1},
		{desc: "disjoint", give: []string{"a"}, with: []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, CommonPrefix(tt.give, tt.with))
			assert.Equal(t, tt.want, CommonPrefix(tt.with, tt.give), "symmetric")
		})
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	errs := []error{nil, errors.New("a"), nil, errors.New("b")}
	got := Filter(errs, func(err error) bool { return err != nil })
	if assert.Len(t, got, 2) {
		assert.EqualError(t, got[0], "a")
		assert.EqualError(t, got[1], "b")
	}
	assert.Nil(t, errs[0], "input must not be modified")

	assert.Nil(t, Filter([]int{1, 2}, func(int) bool { return false }))
	assert.Nil(t, Filter[int](nil, func(int) bool { return true }))
}
