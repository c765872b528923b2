// Package nn implements trainable modules for soft-DTW models.
//
// This package provides:
//   - Parameter: Trainable tensors with gradient tracking
//   - SoftDTWLoss: Differentiable soft-DTW loss between batches of series
//   - Module: Common interface for components that own parameters
//
// Modules compose with the autodiff backend: every tensor they produce is
// built from recorded operations, so autodiff.Backward reaches the inputs.
package nn

import (
	"github.com/Ivorforce/tslearn/internal/softdtw"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// Module is the base interface for components with trainable state.
//
// Returns an empty slice for modules without trainable parameters
// (e.g., loss functions).
type Module[T tensor.DType, B tensor.Backend] interface {
	Parameters() []*Parameter[T, B]
}

// SoftDTWBackend is a Backend that provides soft-DTW kernels.
//
// cpu.CPUBackend implements it for inference; autodiff.AutodiffBackend
// implements it with gradient recording.
type SoftDTWBackend interface {
	tensor.Backend
	PairwiseDistance(x, y *tensor.RawTensor, dist softdtw.Distance) (*tensor.RawTensor, error)
	SoftDTW(d *tensor.RawTensor, gamma float64) (*tensor.RawTensor, error)
}
