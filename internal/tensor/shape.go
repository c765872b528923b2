package tensor

import (
	"fmt"
	"slices"
)

// Shape lists tensor dimensions, outermost first. Series are [batch, len, dim]
// and cost grids are [batch, m, n].
type Shape []int

// NumElements is the product of the dimensions; a rank-0 shape holds one value.
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Validate rejects zero or negative dimensions.
func (s Shape) Validate() error {
	if i := slices.IndexFunc(s, func(d int) bool { return d <= 0 }); i >= 0 {
		return fmt.Errorf("shape %v: dimension %d is %d", []int(s), i, s[i])
	}
	return nil
}

// Equal reports whether s and other have the same dimensions.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns an independent copy.
func (s Shape) Clone() Shape {
	return slices.Clone(s)
}

// offset maps a multi-index to its row-major position, panicking on a rank
// mismatch or an out-of-range coordinate.
func (s Shape) offset(indices []int) int {
	if len(indices) != len(s) {
		panic(fmt.Sprintf("tensor: %d indices for rank-%d shape %v", len(indices), len(s), []int(s)))
	}
	off := 0
	for i, idx := range indices {
		if idx < 0 || idx >= s[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d of %v", idx, i, []int(s)))
		}
		off = off*s[i] + idx
	}
	return off
}
