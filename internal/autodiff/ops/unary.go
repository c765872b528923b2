package ops

import "github.com/Ivorforce/tslearn/internal/tensor"

// unary holds the operand and result of a single-input op.
type unary struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// Inputs returns [input].
func (op *unary) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the result tensor.
func (op *unary) Output() *tensor.RawTensor {
	return op.output
}

// MulScalarOp is output = x * s for a constant s.
type MulScalarOp struct {
	unary
	scalar float64
}

// NewMulScalarOp records x * scalar.
func NewMulScalarOp(x, output *tensor.RawTensor, scalar float64) *MulScalarOp {
	return &MulScalarOp{unary: unary{input: x, output: output}, scalar: scalar}
}

// Backward scales the output gradient by the same constant.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.scalar)}
}

// AddScalarOp is output = x + s for a constant s.
type AddScalarOp struct{ unary }

// NewAddScalarOp records x + scalar. The constant does not affect the gradient.
func NewAddScalarOp(x, output *tensor.RawTensor) *AddScalarOp {
	return &AddScalarOp{unary{input: x, output: output}}
}

// Backward passes the output gradient through.
func (op *AddScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad.Clone()}
}

// SumOp is the total reduction output = Σ x with a scalar result.
// Batch losses are reduced to a single training signal with it.
type SumOp struct{ unary }

// NewSumOp records Σ x.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{unary{input: x, output: output}}
}

// Backward spreads the scalar output gradient over every input element.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	zeros, err := tensor.NewRaw(op.input.Shape(), op.input.DType(), op.input.Device())
	if err != nil {
		panic(err)
	}
	return []*tensor.RawTensor{backend.Add(zeros, outputGrad)}
}

// ReshapeOp is a view with a new shape and the same element order.
// Promoting a [m, d] series to [1, m, d] is recorded this way so the
// gradient keeps the caller's shape.
type ReshapeOp struct{ unary }

// NewReshapeOp records a reshape of input into output.
func NewReshapeOp(input, output *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{unary{input: input, output: output}}
}

// Backward reshapes the output gradient back to the input shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(outputGrad, op.input.Shape())}
}
