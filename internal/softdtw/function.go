package softdtw

import (
	"fmt"

	"github.com/Ivorforce/tslearn/internal/parallel"
)

// Function is the forward/backward pair an autodiff system registers as a
// custom gradient. Forward returns one cost per batch element together with
// the accumulated-cost grid R that Backward consumes.
//
// Backward returns upstream[b] * dcost[b]/dD for every batch element. upstream
// holds one value per element, or a single value applied to all of them.
type Function interface {
	Forward(d Grid, gamma float64) (costs []float64, r Grid, err error)
	Backward(d, r Grid, gamma float64, upstream []float64) (Grid, error)
}

// DP is the dense dynamic-programming implementation of Function.
//
// Batch elements run concurrently according to Parallel. For a single-element
// batch, anti-diagonals with at least WavefrontMinCells cells are swept
// cell-parallel instead. Zero disables the wavefront.
type DP struct {
	Parallel          parallel.Config
	WavefrontMinCells int
}

// NewDP creates a DP with the given parallel configuration and no wavefront.
func NewDP(cfg parallel.Config) *DP {
	return &DP{Parallel: cfg}
}

var _ Function = (*DP)(nil)

// wavefront reports whether per-matrix diagonal parallelism applies.
// Nesting it under the batch fan-out would block pool workers on each other.
func (dp *DP) wavefront(batch int) bool {
	return dp.WavefrontMinCells > 0 && batch == 1
}

// Forward implements Function.
func (dp *DP) Forward(d Grid, gamma float64) ([]float64, Grid, error) {
	if err := checkGamma(gamma); err != nil {
		return nil, Grid{}, err
	}
	if err := d.validate(); err != nil {
		return nil, Grid{}, fmt.Errorf("forward: %w", err)
	}

	m, n := d.Rows, d.Cols
	r := NewGrid(d.Batch, m+2, n+2)
	costs := make([]float64, d.Batch)
	wave := dp.wavefront(d.Batch)

	parallel.For(d.Batch, func(b int) {
		rb := r.Element(b)
		if wave {
			forwardWavefront(rb, d.Element(b), m, n, gamma, dp.WavefrontMinCells, dp.Parallel)
		} else {
			forwardInto(rb, d.Element(b), m, n, gamma)
		}
		costs[b] = Value(rb, m, n)
	}, dp.Parallel)

	return costs, r, nil
}

// Backward implements Function.
func (dp *DP) Backward(d, r Grid, gamma float64, upstream []float64) (Grid, error) {
	if err := checkGamma(gamma); err != nil {
		return Grid{}, err
	}
	if err := d.validate(); err != nil {
		return Grid{}, fmt.Errorf("backward: %w", err)
	}
	if r.Batch != d.Batch || r.Rows != d.Rows+2 || r.Cols != d.Cols+2 || len(r.Data) != r.Batch*r.Rows*r.Cols {
		return Grid{}, fmt.Errorf("%w: R is [%d, %d, %d] for D [%d, %d, %d]",
			ErrShapeMismatch, r.Batch, r.Rows, r.Cols, d.Batch, d.Rows, d.Cols)
	}
	if len(upstream) != 1 && len(upstream) != d.Batch {
		return Grid{}, fmt.Errorf("%w: %d upstream values for batch %d",
			ErrShapeMismatch, len(upstream), d.Batch)
	}

	m, n := d.Rows, d.Cols
	grad := NewGrid(d.Batch, m, n)
	wave := dp.wavefront(d.Batch)

	parallel.For(d.Batch, func(b int) {
		a := newAdjoint(r.Element(b), m, n)
		if wave {
			backwardWavefront(a, d.Element(b), gamma, dp.WavefrontMinCells, dp.Parallel)
		} else {
			for j := n; j >= 1; j-- {
				for i := m; i >= 1; i-- {
					a.cell(d.Element(b), i, j, gamma)
				}
			}
		}
		a.gradient(grad.Element(b), upstream[min(b, len(upstream)-1)])
	}, dp.Parallel)

	return grad, nil
}
