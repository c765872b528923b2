package nn

import (
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// Parameter represents a trainable tensor.
//
// Parameters are tensors that require gradient computation during training,
// such as the series being optimized by a soft-DTW barycenter.
//
// Example:
//
//	z := nn.NewParameter("barycenter", init)
//
//	// Access the tensor
//	t := z.Tensor()
//
//	// Get gradient after backward pass
//	grad := z.Grad()
type Parameter[T tensor.DType, B tensor.Backend] struct {
	name   string               // Parameter name (e.g., "barycenter")
	tensor *tensor.Tensor[T, B] // The parameter tensor
	grad   *tensor.Tensor[T, B] // Gradient tensor (computed during backward pass)
}

// NewParameter creates a new trainable parameter.
//
// The parameter tensor should be initialized before creating the Parameter.
// Gradient will be set after the first backward pass.
func NewParameter[T tensor.DType, B tensor.Backend](name string, t *tensor.Tensor[T, B]) *Parameter[T, B] {
	return &Parameter[T, B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[T, B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[T, B]) Tensor() *tensor.Tensor[T, B] {
	return p.tensor
}

// Grad returns the gradient tensor.
//
// Returns nil if no gradient has been computed yet (before backward pass).
func (p *Parameter[T, B]) Grad() *tensor.Tensor[T, B] {
	return p.grad
}

// SetGrad sets the gradient tensor.
func (p *Parameter[T, B]) SetGrad(grad *tensor.Tensor[T, B]) {
	p.grad = grad
}

// ZeroGrad clears the gradient tensor.
//
// This should be called before each training iteration to avoid
// accumulating gradients from previous iterations.
func (p *Parameter[T, B]) ZeroGrad() {
	p.grad = nil
}

// CollectGrads copies gradients from a backward pass into params.
// Parameters without an entry in grads get a nil gradient.
func CollectGrads[T tensor.DType, B tensor.Backend](params []*Parameter[T, B], grads map[*tensor.RawTensor]*tensor.RawTensor) {
	for _, p := range params {
		g, ok := grads[p.tensor.Raw()]
		if !ok {
			p.grad = nil
			continue
		}
		p.grad = tensor.New[T](g, p.tensor.Backend())
	}
}
