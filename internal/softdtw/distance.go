package softdtw

import (
	"math"

	"github.com/ajroetker/go-highway/hwy/contrib/vec"

	"github.com/Ivorforce/tslearn/internal/parallel"
)

// Distance fills dst (rows×cols, row-major) with the pointwise cost between
// every time step of x (rows×dim) and every time step of y (cols×dim).
type Distance interface {
	Pairwise(dst, x, y []float64, rows, cols, dim int)
}

// DistanceGrad is a Distance that can propagate a cost-matrix gradient g
// (rows×cols) back to its inputs. Backprop accumulates into gx and gy; either
// may be nil when that input needs no gradient. gx and gy may alias when x
// and y are the same series.
type DistanceGrad interface {
	Distance
	Backprop(gx, gy, g, x, y []float64, rows, cols, dim int)
}

// DistanceFunc adapts a plain function to Distance. It has no gradient.
type DistanceFunc func(dst, x, y []float64, rows, cols, dim int)

// Pairwise implements Distance.
func (f DistanceFunc) Pairwise(dst, x, y []float64, rows, cols, dim int) {
	f(dst, x, y, rows, cols, dim)
}

// SquaredEuclidean is the default cost: D[i, j] = Σ_k (x[i, k] - y[j, k])².
// Each row of D is one SIMD batch-distance call.
type SquaredEuclidean struct{}

// Pairwise implements Distance.
func (SquaredEuclidean) Pairwise(dst, x, y []float64, rows, cols, dim int) {
	for i := 0; i < rows; i++ {
		vec.BaseBatchL2SquaredDistance(x[i*dim:(i+1)*dim], y[:cols*dim], dst[i*cols:(i+1)*cols], cols, dim)
	}
}

// Backprop implements DistanceGrad: dD[i, j]/dx[i] = 2(x[i] - y[j]) = -dD[i, j]/dy[j].
func (SquaredEuclidean) Backprop(gx, gy, g, x, y []float64, rows, cols, dim int) {
	for i := 0; i < rows; i++ {
		xi := x[i*dim : (i+1)*dim]
		for j := 0; j < cols; j++ {
			gij := g[i*cols+j]
			if gij == 0 {
				continue
			}
			yj := y[j*dim : (j+1)*dim]
			for k := range xi {
				v := 2 * gij * (xi[k] - yj[k])
				if gx != nil {
					gx[i*dim+k] += v
				}
				if gy != nil {
					gy[j*dim+k] -= v
				}
			}
		}
	}
}

// Manhattan is the L1 cost: D[i, j] = Σ_k |x[i, k] - y[j, k]|.
// With one feature it is the cost used by classical DTW on scalar series.
type Manhattan struct{}

// Pairwise implements Distance.
func (Manhattan) Pairwise(dst, x, y []float64, rows, cols, dim int) {
	for i := 0; i < rows; i++ {
		xi := x[i*dim : (i+1)*dim]
		for j := 0; j < cols; j++ {
			yj := y[j*dim : (j+1)*dim]
			var sum float64
			for k := range xi {
				sum += math.Abs(xi[k] - yj[k])
			}
			dst[i*cols+j] = sum
		}
	}
}

// Backprop implements DistanceGrad using the subgradient sign(x - y), 0 at ties.
func (Manhattan) Backprop(gx, gy, g, x, y []float64, rows, cols, dim int) {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			gij := g[i*cols+j]
			if gij == 0 {
				continue
			}
			for k := 0; k < dim; k++ {
				diff := x[i*dim+k] - y[j*dim+k]
				var s float64
				switch {
				case diff > 0:
					s = 1
				case diff < 0:
					s = -1
				}
				if gx != nil {
					gx[i*dim+k] += gij * s
				}
				if gy != nil {
					gy[j*dim+k] -= gij * s
				}
			}
		}
	}
}

// PairwiseDistance computes the batch of cost matrices [b, m, n] between x
// [b, m, d] and y [b, n, d]. A nil dist means SquaredEuclidean.
// Returns ErrShapeMismatch if batch sizes or feature dimensions differ.
func PairwiseDistance(dist Distance, x, y Series) (Grid, error) {
	if err := checkPair(x, y); err != nil {
		return Grid{}, err
	}
	return pairwise(orDefault(dist), x, y, parallel.Sequential()), nil
}

// pairwise assumes checkPair has passed.
func pairwise(dist Distance, x, y Series, cfg parallel.Config) Grid {
	d := NewGrid(x.Batch, x.Len, y.Len)
	parallel.For(x.Batch, func(b int) {
		dist.Pairwise(d.Element(b), x.Element(b), y.Element(b), x.Len, y.Len, x.Dim)
	}, cfg)
	return d
}

func orDefault(dist Distance) Distance {
	if dist == nil {
		return SquaredEuclidean{}
	}
	return dist
}
