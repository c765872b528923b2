// Package ops holds the tape entries of the autodiff backend. Each entry keeps
// the raw tensors it read and wrote during the forward pass and maps an output
// gradient to input gradients.
//
// The arithmetic entries (AddOp, SubOp, MulOp, MulScalarOp, AddScalarOp,
// SumOp, ReshapeOp) exist so that loss terms can be combined after the fact,
// for example the normalized loss xy - ½(xx + yy). PairwiseDistanceOp and
// SoftDTWOp carry the domain gradients: the distance backprop and the
// expected-alignment adjoint.
package ops

import "github.com/Ivorforce/tslearn/internal/tensor"

// Operation is one recorded call.
type Operation interface {
	// Backward returns one gradient per element of Inputs, in the same order.
	// A nil entry stops the gradient for that input.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	Inputs() []*tensor.RawTensor
	Output() *tensor.RawTensor
}
