// Package softdtw implements the soft Dynamic Time Warping distance and its
// gradient on dense float64 buffers.
//
// Soft-DTW replaces the hard minimum of the classical DTW recursion with a
// smoothed minimum controlled by gamma:
//
//	softmin(a, b, c) = -gamma * log(exp(-a/gamma) + exp(-b/gamma) + exp(-c/gamma))
//
// which makes the accumulated alignment cost differentiable with respect to
// every entry of the pointwise cost matrix D.
//
// Layout:
//   - Series: a batch [b, m, d] of multivariate time series
//   - Grid: a batch [b, rows, cols] of matrices (D, R and gradients)
//
// Two dynamic-programming passes do all the work:
//   - Forward fills the padded (m+2)×(n+2) accumulated-cost matrix R.
//     R[m, n] is the soft-DTW value.
//   - Backward sweeps R in reverse and returns dR[m, n]/dD without building
//     a computation graph for the forward recursion.
//
// Border cells of R hold math.MaxFloat64 ("unreachable"). The backward pass
// works on a private copy of R whose extra ring holds -math.MaxFloat64, so the
// caller's R is never modified. Finite sentinels keep exp/log free of NaN.
//
// Batch elements are independent and may run concurrently. Within one matrix,
// cells on the same anti-diagonal are independent; DP.WavefrontMinCells turns
// on cell-parallel sweeps for long diagonals. Both produce results identical to
// the sequential row-major sweep.
//
// Example:
//
//	x, _ := softdtw.NewSeries([]float64{0, 1}, 1, 2, 1)
//	y, _ := softdtw.NewSeries([]float64{0, 2}, 1, 2, 1)
//	loss, err := softdtw.Loss(x, y, softdtw.DefaultOptions())
package softdtw
