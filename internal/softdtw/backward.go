package softdtw

import "math"

// Backward computes upstream * dR[m, n]/dD for one element, given the cost
// matrix d (m×n) and the accumulated-cost matrix r returned by Forward.
// The result is an m×n row-major slice. r is not modified.
//
// The adjoint E obeys the reversed recursion
//
//	E[i, j] = E[i+1, j]*a + E[i, j+1]*b + E[i+1, j+1]*c
//	a = exp((R[i+1, j]   - R[i, j] - D[i, j-1]) / gamma)
//	b = exp((R[i, j+1]   - R[i, j] - D[i-1, j]) / gamma)
//	c = exp((R[i+1, j+1] - R[i, j] - D[i, j])   / gamma)
//
// with R, E 1-indexed and D 0-indexed, so D[i, j-1] is the cost added when the
// forward pass entered cell (i+1, j). Each weight is the partial derivative of
// that cell's softmin with respect to R[i, j]. D reads as zero in its missing
// last row and column, and the terminal anchor is E[m+1, n+1] = 1 with
// R[m+1, n+1] = R[m, n].
func Backward(d, r []float64, m, n int, gamma, upstream float64) []float64 {
	a := newAdjoint(r, m, n)
	for j := n; j >= 1; j-- {
		for i := m; i >= 1; i-- {
			a.cell(d, i, j, gamma)
		}
	}
	out := make([]float64, m*n)
	a.gradient(out, upstream)
	return out
}

// adjoint holds the scratch state of one backward pass.
type adjoint struct {
	r []float64 // copy of R with the outside ring and terminal corner set
	e []float64 // adjoint, same padded shape
	m int
	n int
}

func newAdjoint(r []float64, m, n int) *adjoint {
	w := n + 2
	a := &adjoint{
		r: append([]float64(nil), r[:(m+2)*w]...),
		e: make([]float64, (m+2)*w),
		m: m,
		n: n,
	}
	for i := 1; i <= m; i++ {
		a.r[i*w+n+1] = outside
	}
	for j := 1; j <= n; j++ {
		a.r[(m+1)*w+j] = outside
	}
	a.r[(m+1)*w+n+1] = a.r[m*w+n]
	a.e[(m+1)*w+n+1] = 1
	return a
}

// cost reads d as an (m+1)×(n+1) matrix whose last row and column are zero.
func (a *adjoint) cost(d []float64, i, j int) float64 {
	if i >= a.m || j >= a.n {
		return 0
	}
	return d[i*a.n+j]
}

// cell computes E[i, j]. (i+1, j), (i, j+1) and (i+1, j+1) must already be final.
func (a *adjoint) cell(d []float64, i, j int, gamma float64) {
	w := a.n + 2
	r, e := a.r, a.e
	rij := r[i*w+j]

	down := math.Exp((r[(i+1)*w+j] - rij - a.cost(d, i, j-1)) / gamma)
	right := math.Exp((r[i*w+j+1] - rij - a.cost(d, i-1, j)) / gamma)
	diag := math.Exp((r[(i+1)*w+j+1] - rij - a.cost(d, i, j)) / gamma)

	e[i*w+j] = e[(i+1)*w+j]*down + e[i*w+j+1]*right + e[(i+1)*w+j+1]*diag
}

// gradient writes the interior of E, scaled by upstream, into out (m×n).
func (a *adjoint) gradient(out []float64, upstream float64) {
	w := a.n + 2
	for i := 1; i <= a.m; i++ {
		row := a.e[i*w+1 : i*w+1+a.n]
		dst := out[(i-1)*a.n : i*a.n]
		for j, v := range row {
			dst[j] = v * upstream
		}
	}
}
