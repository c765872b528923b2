package ops

import (
	"github.com/Ivorforce/tslearn/internal/softdtw"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// PairwiseDistanceOp records D = dist(x, y) for x [b, m, d] and y [b, n, d].
//
// Backward pass routes dL/dD to both inputs through softdtw.DistanceGrad:
//
//	grad_x[b, i] = Σ_j dL/dD[b, i, j] * dD[b, i, j]/dx[b, i]
//	grad_y[b, j] = Σ_i dL/dD[b, i, j] * dD[b, i, j]/dy[b, j]
//
// Distances without a gradient yield nil input gradients. When x and y are
// the same tensor the tape sums both contributions.
type PairwiseDistanceOp struct {
	x, y   *tensor.RawTensor
	output *tensor.RawTensor
	dist   softdtw.Distance
}

// NewPairwiseDistanceOp creates a new PairwiseDistanceOp.
func NewPairwiseDistanceOp(x, y, output *tensor.RawTensor, dist softdtw.Distance) *PairwiseDistanceOp {
	return &PairwiseDistanceOp{x: x, y: y, output: output, dist: dist}
}

// Inputs returns the input tensors [x, y].
func (op *PairwiseDistanceOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.x, op.y}
}

// Output returns the cost matrices.
func (op *PairwiseDistanceOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward computes gradients for x and y.
func (op *PairwiseDistanceOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	dg, ok := op.dist.(softdtw.DistanceGrad)
	if !ok {
		return []*tensor.RawTensor{nil, nil}
	}

	batch, m, dim := rank3(op.x)
	_, n, _ := rank3(op.y)
	x, y, g := op.x.Float64s(), op.y.Float64s(), outputGrad.Float64s()
	gx := make([]float64, len(x))
	gy := make([]float64, len(y))

	for b := 0; b < batch; b++ {
		xs, ys := x[b*m*dim:(b+1)*m*dim], y[b*n*dim:(b+1)*n*dim]
		dg.Backprop(gx[b*m*dim:(b+1)*m*dim], gy[b*n*dim:(b+1)*n*dim],
			g[b*m*n:(b+1)*m*n], xs, ys, m, n, dim)
	}

	gradX, err := tensor.NewRawFromFloat64s(gx, op.x.Shape(), op.x.DType(), op.x.Device())
	if err != nil {
		panic(err)
	}
	gradY, err := tensor.NewRawFromFloat64s(gy, op.y.Shape(), op.y.DType(), op.y.Device())
	if err != nil {
		panic(err)
	}
	return []*tensor.RawTensor{gradX, gradY}
}
