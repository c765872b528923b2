// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package softdtw

import (
	"github.com/Ivorforce/tslearn/internal/parallel"
	"github.com/Ivorforce/tslearn/internal/softdtw"
)

// Series is a batch of equal-length multivariate time series.
type Series = softdtw.Series

// Grid is a batch of matrices such as cost or alignment matrices.
type Grid = softdtw.Grid

// Options configures the soft-DTW loss and its derived measures.
type Options = softdtw.Options

// ParallelConfig controls how work is spread across goroutines.
type ParallelConfig = parallel.Config

// Distance computes pointwise costs between two series.
type Distance = softdtw.Distance

// DistanceGrad is a Distance with a gradient.
type DistanceGrad = softdtw.DistanceGrad

// DistanceFunc adapts a plain function to Distance.
type DistanceFunc = softdtw.DistanceFunc

// SquaredEuclidean is the default pointwise cost.
type SquaredEuclidean = softdtw.SquaredEuclidean

// Manhattan is the L1 pointwise cost.
type Manhattan = softdtw.Manhattan

// Errors.
var (
	ErrShapeMismatch     = softdtw.ErrShapeMismatch
	ErrInvalidGamma      = softdtw.ErrInvalidGamma
	ErrDivisionByZero    = softdtw.ErrDivisionByZero
	ErrEmptySeries       = softdtw.ErrEmptySeries
	ErrBadShape          = softdtw.ErrBadShape
	ErrNotDifferentiable = softdtw.ErrNotDifferentiable
)

// NewSeries wraps data as a [batch, length, dim] series without copying.
func NewSeries(data []float64, batch, length, dim int) (Series, error) {
	return softdtw.NewSeries(data, batch, length, dim)
}

// Stack concatenates series of equal length and dimension along the batch axis.
func Stack(items ...Series) (Series, error) {
	return softdtw.Stack(items...)
}

// DefaultOptions returns gamma = 1 with squared Euclidean cost and
// CPU-count parallelism.
func DefaultOptions() Options {
	return softdtw.DefaultOptions()
}

// Sequential returns a ParallelConfig that runs everything on the caller's goroutine.
func Sequential() ParallelConfig {
	return parallel.Sequential()
}

// SoftMin computes the smoothed minimum of three values.
//
// Example:
//
//	v, _ := softdtw.SoftMin(1, 2, 3, 1) // 0.5924
func SoftMin(a, b, c, gamma float64) (float64, error) {
	return softdtw.SoftMin(a, b, c, gamma)
}

// PairwiseDistance computes cost matrices [b, m, n] between x and y.
// A nil dist means SquaredEuclidean.
func PairwiseDistance(dist Distance, x, y Series) (Grid, error) {
	return softdtw.PairwiseDistance(dist, x, y)
}

// Loss computes one soft-DTW value per batch element.
func Loss(x, y Series, opts Options) ([]float64, error) {
	return softdtw.Loss(x, y, opts)
}

// LossGrad computes Loss together with its gradients with respect to x and y.
func LossGrad(x, y Series, opts Options) (loss []float64, gx, gy Series, err error) {
	return softdtw.LossGrad(x, y, opts)
}

// Alignment returns the expected alignment matrices between x and y and
// the soft-DTW value of each pair.
func Alignment(x, y Series, opts Options) (Grid, []float64, error) {
	return softdtw.Alignment(x, y, opts)
}

// CDist computes the [1, a.Batch, b.Batch] matrix of soft-DTW values between
// every element of a and every element of b.
func CDist(a, b Series, opts Options) (Grid, error) {
	return softdtw.CDist(a, b, opts)
}
