package softdtw

import (
	"fmt"

	"github.com/Ivorforce/tslearn/internal/parallel"
)

// CDist computes the cross soft-DTW matrix between every element of a and
// every element of b. The result has shape [1, a.Batch, b.Batch]. With
// Options.Normalize the entries are sdtw(p, q) - ½(sdtw(p, p) + sdtw(q, q)),
// so CDist(a, a) has a zero diagonal.
//
// a and b must share the feature dimension; their lengths and batch sizes
// may differ. Pairs are evaluated concurrently.
func CDist(a, b Series, opts Options) (Grid, error) {
	if err := a.Validate(); err != nil {
		return Grid{}, fmt.Errorf("a: %w", err)
	}
	if err := b.Validate(); err != nil {
		return Grid{}, fmt.Errorf("b: %w", err)
	}
	if a.Dim != b.Dim {
		return Grid{}, fmt.Errorf("%w: a has dimension %d, b has dimension %d", ErrShapeMismatch, a.Dim, b.Dim)
	}
	if err := opts.Validate(); err != nil {
		return Grid{}, err
	}

	dist := opts.distance()
	out := NewGrid(1, a.Batch, b.Batch)
	parallel.For(a.Batch*b.Batch, func(k int) {
		p, q := k/b.Batch, k%b.Batch
		out.Data[k] = pairValue(dist, a.Element(p), b.Element(q), a.Len, b.Len, a.Dim, opts.Gamma)
	}, opts.Parallel)

	if !opts.Normalize {
		return out, nil
	}

	selfA := selfValues(dist, a, opts)
	selfB := selfValues(dist, b, opts)
	for p := 0; p < a.Batch; p++ {
		for q := 0; q < b.Batch; q++ {
			out.Data[p*b.Batch+q] -= 0.5 * (selfA[p] + selfB[q])
		}
	}
	return out, nil
}

// pairValue runs one sequential forward pass for a single pair.
func pairValue(dist Distance, x, y []float64, m, n, dim int, gamma float64) float64 {
	d := make([]float64, m*n)
	dist.Pairwise(d, x, y, m, n, dim)
	return Value(Forward(d, m, n, gamma), m, n)
}

func selfValues(dist Distance, s Series, opts Options) []float64 {
	out := make([]float64, s.Batch)
	parallel.For(s.Batch, func(p int) {
		e := s.Element(p)
		out[p] = pairValue(dist, e, e, s.Len, s.Len, s.Dim, opts.Gamma)
	}, opts.Parallel)
	return out
}
