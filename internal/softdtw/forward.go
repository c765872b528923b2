package softdtw

import "math"

const (
	// unreachable fills the border of R: no alignment path may enter it.
	// A finite maximum keeps softmin free of Inf-Inf.
	unreachable = math.MaxFloat64

	// outside fills the extra ring the backward pass adds beyond R.
	// exp((outside - r)/gamma) is exactly 0 for every reachable r.
	outside = -math.MaxFloat64
)

// Forward runs the accumulation recursion over the m×n cost matrix d (row-major)
// and returns the padded (m+2)×(n+2) accumulated-cost matrix R:
//
//	R[0, 0] = 0, every other border cell = unreachable
//	R[i, j] = d[i-1, j-1] + softmin(R[i-1, j], R[i-1, j-1], R[i, j-1])
//
// The soft-DTW value is Value(R, m, n). gamma must be positive.
func Forward(d []float64, m, n int, gamma float64) []float64 {
	r := make([]float64, (m+2)*(n+2))
	forwardInto(r, d, m, n, gamma)
	return r
}

// Value returns R[m, n] from a padded accumulated-cost matrix.
func Value(r []float64, m, n int) float64 {
	return r[m*(n+2)+n]
}

// forwardInto fills r (length (m+2)*(n+2)) with a row-major sweep.
func forwardInto(r, d []float64, m, n int, gamma float64) {
	initBorder(r)
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			forwardCell(r, d, n, i, j, gamma)
		}
	}
}

// initBorder marks every cell unreachable and anchors R[0, 0] = 0.
// Interior cells are overwritten by the sweep.
func initBorder(r []float64) {
	for k := range r {
		r[k] = unreachable
	}
	r[0] = 0
}

// forwardCell computes R[i, j] from its three predecessors.
func forwardCell(r, d []float64, n, i, j int, gamma float64) {
	w := n + 2
	up := r[(i-1)*w+j]
	diag := r[(i-1)*w+j-1]
	left := r[i*w+j-1]
	r[i*w+j] = d[(i-1)*n+j-1] + softmin(up, diag, left, gamma)
}
