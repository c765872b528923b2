// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/Ivorforce/tslearn/internal/nn"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// Parameter represents a trainable parameter in a model.
type Parameter[T tensor.DType, B tensor.Backend] = nn.Parameter[T, B]

// NewParameter creates a new trainable parameter.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	init := tensor.Zeros[float64](tensor.Shape{1, 32, 1}, backend)
//	z := nn.NewParameter("barycenter", init)
func NewParameter[T tensor.DType, B tensor.Backend](name string, t *tensor.Tensor[T, B]) *Parameter[T, B] {
	return nn.NewParameter(name, t)
}

// CollectGrads copies gradients from a Backward result into each parameter.
func CollectGrads[T tensor.DType, B tensor.Backend](params []*Parameter[T, B], grads map[*tensor.RawTensor]*tensor.RawTensor) {
	nn.CollectGrads(params, grads)
}
