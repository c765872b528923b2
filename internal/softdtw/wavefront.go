package softdtw

import "github.com/Ivorforce/tslearn/internal/parallel"

// Anti-diagonal sweeps. Cells with equal i+j = k depend only on diagonals k-1
// and k-2 in the forward pass, and only on k+1 and k+2 in the backward pass, so
// each diagonal can be computed in parallel once its predecessors are done.
// Every cell is evaluated with the same arithmetic as the row-major sweep, so
// results match it bit for bit.

// diagonal returns the first row index and cell count of anti-diagonal k.
func diagonal(k, m, n int) (first, count int) {
	first = max(1, k-n)
	last := min(m, k-1)
	return first, last - first + 1
}

// forwardWavefront fills r like forwardInto, fanning out diagonals with at
// least minCells cells.
func forwardWavefront(r, d []float64, m, n int, gamma float64, minCells int, cfg parallel.Config) {
	initBorder(r)
	for k := 2; k <= m+n; k++ {
		first, count := diagonal(k, m, n)
		sweep := func(start, end int) {
			for c := start; c < end; c++ {
				i := first + c
				forwardCell(r, d, n, i, k-i, gamma)
			}
		}
		if count < minCells {
			sweep(0, count)
			continue
		}
		parallel.ForRange(count, sweep, cfg)
	}
}

// backwardWavefront runs the adjoint recursion diagonal by diagonal, from the
// terminal corner back to (1, 1).
func backwardWavefront(a *adjoint, d []float64, gamma float64, minCells int, cfg parallel.Config) {
	m, n := a.m, a.n
	for k := m + n; k >= 2; k-- {
		first, count := diagonal(k, m, n)
		sweep := func(start, end int) {
			for c := start; c < end; c++ {
				i := first + c
				a.cell(d, i, k-i, gamma)
			}
		}
		if count < minCells {
			sweep(0, count)
			continue
		}
		parallel.ForRange(count, sweep, cfg)
	}
}
