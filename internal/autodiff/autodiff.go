// Package autodiff implements automatic differentiation using the decorator pattern.
//
// AutodiffBackend wraps any Backend implementation and adds gradient tracking
// through a GradientTape.
//
// Architecture:
//   - Decorator pattern: AutodiffBackend[B] wraps any Backend implementation
//   - GradientTape: Records operations during forward pass
//   - Operation interface: Each op implements its backward pass
//   - Custom gradients: soft-DTW registers its hand-written adjoint pass as
//     one fused operation instead of recording every DP cell
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	d, _ := backend.PairwiseDistance(x.Raw(), y.Raw(), nil)
//	costs, _ := backend.SoftDTW(d, 1.0)
//
//	grads := autodiff.Backward(tensor.New[float64](costs, backend), backend)
//	gx := grads[x.Raw()]
package autodiff

import (
	"errors"
	"fmt"

	"github.com/Ivorforce/tslearn/internal/autodiff/ops"
	"github.com/Ivorforce/tslearn/internal/softdtw"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// ErrNoKernels is returned when the wrapped backend has no soft-DTW kernels.
var ErrNoKernels = errors.New("autodiff: backend does not provide soft-DTW kernels")

// Kernels is implemented by backends that provide soft-DTW kernels.
// cpu.CPUBackend implements it.
type Kernels interface {
	PairwiseDistance(x, y *tensor.RawTensor, dist softdtw.Distance) (*tensor.RawTensor, error)
	SoftDTWFunction() softdtw.Function
}

// AutodiffBackend wraps a Backend and adds automatic differentiation.
// It implements the tensor.Backend interface and records operations in a GradientTape.
//
// Type parameter B must satisfy the tensor.Backend interface.
type AutodiffBackend[B tensor.Backend] struct {
	inner B             // Wrapped backend
	tape  *GradientTape // Records operations for backpropagation
}

// New creates a new AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control.
// Useful for:
//   - Starting/stopping recording
//   - Clearing tape between iterations
//   - Inspecting recorded operations
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// NoGrad runs fn with recording disabled and restores the previous state.
func (b *AutodiffBackend[B]) NoGrad(fn func()) {
	was := b.tape.IsRecording()
	b.tape.StopRecording()
	defer func() {
		if was {
			b.tape.StartRecording()
		}
	}()
	fn()
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(a, c)
	b.tape.Record(ops.NewAddOp(a, c, result))
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *AutodiffBackend[B]) Sub(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sub(a, c)
	b.tape.Record(ops.NewSubOp(a, c, result))
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend[B]) Mul(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mul(a, c)
	b.tape.Record(ops.NewMulOp(a, c, result))
	return result
}

// MulScalar multiplies by a constant and records the operation.
func (b *AutodiffBackend[B]) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := b.inner.MulScalar(x, scalar)
	b.tape.Record(ops.NewMulScalarOp(x, result, scalar))
	return result
}

// AddScalar adds a constant and records the operation.
func (b *AutodiffBackend[B]) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := b.inner.AddScalar(x, scalar)
	b.tape.Record(ops.NewAddScalarOp(x, result))
	return result
}

// Sum reduces to a scalar and records the operation.
func (b *AutodiffBackend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sum(x)
	b.tape.Record(ops.NewSumOp(x, result))
	return result
}

// Reshape reshapes a tensor and records the operation.
//
// Reshape must be recorded even though it is a view: the output is a distinct
// RawTensor, and without ReshapeOp the gradient would stop at it instead of
// reaching the original input.
func (b *AutodiffBackend[B]) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result := b.inner.Reshape(t, newShape)
	b.tape.Record(ops.NewReshapeOp(t, result))
	return result
}

// kernels returns the wrapped backend's soft-DTW kernels.
func (b *AutodiffBackend[B]) kernels() (Kernels, error) {
	k, ok := any(b.inner).(Kernels)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoKernels, b.inner.Name())
	}
	return k, nil
}

// SoftDTWFunction returns the wrapped backend's strategy, or nil if it has none.
func (b *AutodiffBackend[B]) SoftDTWFunction() softdtw.Function {
	k, err := b.kernels()
	if err != nil {
		return nil
	}
	return k.SoftDTWFunction()
}

// PairwiseDistance computes cost matrices and records a PairwiseDistanceOp.
func (b *AutodiffBackend[B]) PairwiseDistance(x, y *tensor.RawTensor, dist softdtw.Distance) (*tensor.RawTensor, error) {
	k, err := b.kernels()
	if err != nil {
		return nil, err
	}
	if dist == nil {
		dist = softdtw.SquaredEuclidean{}
	}
	result, err := k.PairwiseDistance(x, y, dist)
	if err != nil {
		return nil, err
	}
	b.tape.Record(ops.NewPairwiseDistanceOp(x, y, result, dist))
	return result, nil
}

// SoftDTW runs the forward recursion over d [b, m, n] and records a SoftDTWOp
// holding the accumulated-cost grid for the backward pass. Returns costs [b].
func (b *AutodiffBackend[B]) SoftDTW(d *tensor.RawTensor, gamma float64) (*tensor.RawTensor, error) {
	k, err := b.kernels()
	if err != nil {
		return nil, err
	}
	shape := d.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("%w: want [batch, rows, cols], got %v", softdtw.ErrBadShape, shape)
	}
	cost := softdtw.Grid{Data: d.Float64s(), Batch: shape[0], Rows: shape[1], Cols: shape[2]}

	fn := k.SoftDTWFunction()
	costs, r, err := fn.Forward(cost, gamma)
	if err != nil {
		return nil, err
	}
	result, err := tensor.NewRawFromFloat64s(costs, tensor.Shape{cost.Batch}, d.DType(), b.Device())
	if err != nil {
		return nil, err
	}
	b.tape.Record(ops.NewSoftDTWOp(d, result, cost, r, gamma, fn))
	return result, nil
}
