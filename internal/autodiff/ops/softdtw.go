package ops

import (
	"fmt"

	"github.com/Ivorforce/tslearn/internal/softdtw"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// SoftDTWOp records costs = sdtw_gamma(D) for cost matrices D [b, m, n].
//
// The tape never replays the DP cell by cell. Backward hands the stored
// accumulated-cost grid R to the adjoint recursion of fn:
//
//	grad_D[b] = outputGrad[b] * E[b]
//
// where E[b] is the expected alignment matrix of element b.
type SoftDTWOp struct {
	d      *tensor.RawTensor
	output *tensor.RawTensor
	cost   softdtw.Grid // float64 copy of D
	r      softdtw.Grid // accumulated costs from the forward pass
	gamma  float64
	fn     softdtw.Function
}

// NewSoftDTWOp creates a new SoftDTWOp from the forward results of fn.
func NewSoftDTWOp(d, output *tensor.RawTensor, cost, r softdtw.Grid, gamma float64, fn softdtw.Function) *SoftDTWOp {
	return &SoftDTWOp{d: d, output: output, cost: cost, r: r, gamma: gamma, fn: fn}
}

// Inputs returns the input tensors [D].
func (op *SoftDTWOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.d}
}

// Output returns the per-element costs [b].
func (op *SoftDTWOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward computes dL/dD. outputGrad holds one value per batch element.
func (op *SoftDTWOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	grad, err := op.fn.Backward(op.cost, op.r, op.gamma, outputGrad.Float64s())
	if err != nil {
		// Inputs were validated by the forward pass.
		panic(fmt.Sprintf("soft-DTW backward: %v", err))
	}
	gradD, err := tensor.NewRawFromFloat64s(grad.Data, op.d.Shape(), op.d.DType(), op.d.Device())
	if err != nil {
		panic(err)
	}
	return []*tensor.RawTensor{gradD}
}
