package ops

import "github.com/Ivorforce/tslearn/internal/tensor"

// binary holds the operands and result of an element-wise binary op.
// Either operand may be a single element broadcast against the other; its
// gradient is then the sum over the broadcast axis.
type binary struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

// Inputs returns [a, b].
func (op *binary) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.a, op.b}
}

// Output returns the result tensor.
func (op *binary) Output() *tensor.RawTensor {
	return op.output
}

// grads shapes the two raw input gradients to their operands.
func (op *binary) grads(ga, gb *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(ga, op.a.Shape(), backend),
		reduceBroadcast(gb, op.b.Shape(), backend),
	}
}

// AddOp is output = a + b. Both inputs receive the output gradient.
type AddOp struct{ binary }

// NewAddOp records a + b.
func NewAddOp(a, b, output *tensor.RawTensor) *AddOp {
	return &AddOp{binary{a: a, b: b, output: output}}
}

// Backward implements Operation.
func (op *AddOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return op.grads(outputGrad, outputGrad, backend)
}

// SubOp is output = a - b. b receives the negated output gradient.
//
// The loss normalization cross - ½(xx + yy) is recorded through this op.
type SubOp struct{ binary }

// NewSubOp records a - b.
func NewSubOp(a, b, output *tensor.RawTensor) *SubOp {
	return &SubOp{binary{a: a, b: b, output: output}}
}

// Backward implements Operation.
func (op *SubOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return op.grads(outputGrad, backend.MulScalar(outputGrad, -1), backend)
}

// MulOp is output = a * b, so grad_a = outputGrad * b and grad_b = outputGrad * a.
type MulOp struct{ binary }

// NewMulOp records a * b.
func NewMulOp(a, b, output *tensor.RawTensor) *MulOp {
	return &MulOp{binary{a: a, b: b, output: output}}
}

// Backward implements Operation.
func (op *MulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return op.grads(backend.Mul(outputGrad, op.b), backend.Mul(outputGrad, op.a), backend)
}
