// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff differentiates soft-DTW losses in reverse mode.
//
// New wraps a backend so that every differentiable call is logged on a
// GradientTape. Soft-DTW itself is logged as one entry whose backward pass
// is the expected-alignment recursion, so the grid of path probabilities is
// never materialized as a chain of softmin steps.
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
	"github.com/Ivorforce/tslearn/internal/autodiff"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// Backend is the autodiff-enabled backend.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New wraps backend. The tape starts out not recording.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape is the operation log consumed by Backward.
type GradientTape = autodiff.GradientTape

func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// BackwardCapable is a backend that owns a GradientTape.
type BackwardCapable = autodiff.BackwardCapable

// Kernels is implemented by backends that provide soft-DTW kernels.
type Kernels = autodiff.Kernels

// ErrNoKernels is returned when the wrapped backend has no soft-DTW kernels.
var ErrNoKernels = autodiff.ErrNoKernels

// Backward returns the gradient of sum(t) with respect to every recorded
// input, keyed by raw tensor.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(t, backend)
}
