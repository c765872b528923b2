package ops

import (
	"fmt"

	"github.com/Ivorforce/tslearn/internal/tensor"
)

// reduceBroadcast reduces a gradient tensor to match the target shape.
// Backends only broadcast single-element operands, so the reduction is either
// a copy (shapes match) or a total sum reshaped to the target.
//
// Example:
//
//	Forward: a[1] * b[3,4] -> c[3,4]  (a was broadcast)
//	Backward: grad_c[3,4] -> grad_a[1] (sum of all elements)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	// Clone so later accumulation never aliases a shared gradient.
	if grad.Shape().Equal(targetShape) {
		return grad.Clone()
	}
	if targetShape.NumElements() != 1 {
		panic(fmt.Sprintf("reduceBroadcast: cannot reduce %v to %v", grad.Shape(), targetShape))
	}
	return backend.Reshape(backend.Sum(grad), targetShape)
}

// rank3 returns the dimensions of a [batch, rows, cols] tensor.
func rank3(t *tensor.RawTensor) (batch, rows, cols int) {
	shape := t.Shape()
	if len(shape) != 3 {
		panic(fmt.Sprintf("expected a rank-3 tensor, got shape %v", shape))
	}
	return shape[0], shape[1], shape[2]
}
