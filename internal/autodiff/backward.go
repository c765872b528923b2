package autodiff

import (
	"fmt"

	"github.com/Ivorforce/tslearn/internal/tensor"
)

// BackwardCapable is a backend that owns a gradient tape.
type BackwardCapable interface {
	tensor.Backend
	GetTape() *GradientTape
}

// GetTape returns the backend's tape.
func (b *AutodiffBackend[B]) GetTape() *GradientTape {
	return b.tape
}

// Backward differentiates t with respect to every tensor that fed into it.
// The seed is a tensor of ones shaped like t, so for a batch of per-pair
// losses the result is the gradient of their sum:
//
//	backend.Tape().StartRecording()
//	loss, _ := lossFn.Forward(x, y) // [b]
//	gx := autodiff.Backward(loss, backend)[x.Raw()]
//
// Backward panics when nothing was recorded.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	tape := backend.GetTape()
	if tape.NumOps() == 0 {
		panic("autodiff: empty tape; start recording before the forward pass")
	}

	seed, err := tensor.NewRaw(t.Shape(), t.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("autodiff: seed gradient: %v", err))
	}
	ones := make([]float64, seed.NumElements())
	for i := range ones {
		ones[i] = 1
	}
	seed.SetFloat64s(ones)

	return tape.BackwardFrom(t.Raw(), seed, backend)
}
