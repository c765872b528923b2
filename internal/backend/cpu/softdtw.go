package cpu

import (
	"fmt"

	"github.com/Ivorforce/tslearn/internal/parallel"
	"github.com/Ivorforce/tslearn/internal/softdtw"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// SeriesOf copies a rank-3 [batch, len, dim] tensor into a float64 series.
func SeriesOf(r *tensor.RawTensor) (softdtw.Series, error) {
	shape := r.Shape()
	if len(shape) != 3 {
		return softdtw.Series{}, fmt.Errorf("%w: want [batch, len, dim], got %v", softdtw.ErrBadShape, shape)
	}
	return softdtw.NewSeries(r.Float64s(), shape[0], shape[1], shape[2])
}

// GridOf copies a rank-3 [batch, rows, cols] tensor into a float64 grid.
func GridOf(r *tensor.RawTensor) (softdtw.Grid, error) {
	shape := r.Shape()
	if len(shape) != 3 {
		return softdtw.Grid{}, fmt.Errorf("%w: want [batch, rows, cols], got %v", softdtw.ErrBadShape, shape)
	}
	return softdtw.Grid{Data: r.Float64s(), Batch: shape[0], Rows: shape[1], Cols: shape[2]}, nil
}

// PairwiseDistance computes the cost matrices [b, m, n] between x [b, m, d]
// and y [b, n, d]. A nil dist means squared Euclidean. The result has x's dtype.
func (cpu *CPUBackend) PairwiseDistance(x, y *tensor.RawTensor, dist softdtw.Distance) (*tensor.RawTensor, error) {
	if x.DType() != y.DType() {
		return nil, fmt.Errorf("%w: dtype %s vs %s", softdtw.ErrShapeMismatch, x.DType(), y.DType())
	}
	xs, err := SeriesOf(x)
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	ys, err := SeriesOf(y)
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	if xs.Batch != ys.Batch || xs.Dim != ys.Dim {
		return nil, fmt.Errorf("%w: x is %v, y is %v", softdtw.ErrShapeMismatch, x.Shape(), y.Shape())
	}
	if dist == nil {
		dist = softdtw.SquaredEuclidean{}
	}

	d := softdtw.NewGrid(xs.Batch, xs.Len, ys.Len)
	parallel.For(xs.Batch, func(b int) {
		dist.Pairwise(d.Element(b), xs.Element(b), ys.Element(b), xs.Len, ys.Len, xs.Dim)
	}, cpu.config.Parallel)

	return tensor.NewRawFromFloat64s(d.Data, tensor.Shape{d.Batch, d.Rows, d.Cols}, x.DType(), cpu.device)
}

// SoftDTWFunction returns the forward/backward strategy configured for this backend.
func (cpu *CPUBackend) SoftDTWFunction() softdtw.Function {
	return &softdtw.DP{
		Parallel:          cpu.config.Parallel,
		WavefrontMinCells: cpu.config.WavefrontMinCells,
	}
}

// SoftDTW runs the forward recursion over cost matrices d [b, m, n] and
// returns one value per batch element (shape [b]). Nothing is recorded; use
// the autodiff backend for gradients.
func (cpu *CPUBackend) SoftDTW(d *tensor.RawTensor, gamma float64) (*tensor.RawTensor, error) {
	grid, err := GridOf(d)
	if err != nil {
		return nil, err
	}
	costs, _, err := cpu.SoftDTWFunction().Forward(grid, gamma)
	if err != nil {
		return nil, err
	}
	return tensor.NewRawFromFloat64s(costs, tensor.Shape{grid.Batch}, d.DType(), cpu.device)
}
