// Package optim updates learnable series in place from the gradient map that
// autodiff.Backward returns. SGD (with optional momentum) and Adam are
// provided; both are generic over the parameter element type.
//
// A barycenter fit is the typical loop:
//
//	z := nn.NewParameter("z", init)
//	opt := optim.NewAdam([]*nn.Parameter[float64, B]{z}, optim.AdamConfig{LR: 0.1}, backend)
//
//	for range iterations {
//	    backend.Tape().Clear()
//	    backend.Tape().StartRecording()
//	    loss, _ := lossFn.Forward(z.Tensor(), target)
//	    grads := autodiff.Backward(loss, backend)
//	    backend.Tape().StopRecording()
//
//	    opt.Step(grads)
//	    opt.ZeroGrad()
//	}
package optim

import (
	"github.com/Ivorforce/tslearn/internal/nn"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// Optimizer updates its parameters from a gradient map keyed by raw tensor.
type Optimizer interface {
	// Step moves every parameter that has an entry in grads. Parameters
	// without one are left alone.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)
	ZeroGrad()
	GetLR() float64
}

// Config holds the settings shared by every optimizer.
type Config struct {
	LR float64
}

// getGradient returns nil for parameters that did not feed the loss.
func getGradient[T tensor.DType, B tensor.Backend](param *nn.Parameter[T, B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}

// typed views a gradient with the parameter's element type.
func typed[T tensor.DType, B tensor.Backend](grad *tensor.RawTensor, backend B) []T {
	return tensor.New[T](grad, backend).Data()
}
