// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/Ivorforce/tslearn/internal/nn"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// Module is the base interface for components with trainable state.
type Module[T tensor.DType, B tensor.Backend] = nn.Module[T, B]

// SoftDTWBackend is a tensor backend that provides soft-DTW kernels.
// Both the CPU backend and the autodiff backend implement it.
type SoftDTWBackend = nn.SoftDTWBackend

// Reduction selects how per-element losses are combined.
type Reduction = nn.Reduction

// Reductions.
const (
	ReduceNone = nn.ReduceNone // One loss per batch element
	ReduceMean = nn.ReduceMean // Mean over the batch, shape [1]
	ReduceSum  = nn.ReduceSum  // Sum over the batch, shape [1]
)

// SoftDTWLossConfig configures a SoftDTWLoss.
type SoftDTWLossConfig = nn.SoftDTWLossConfig

// SoftDTWLoss computes the soft-DTW discrepancy between two batches of series.
type SoftDTWLoss[T tensor.DType, B SoftDTWBackend] = nn.SoftDTWLoss[T, B]

// DefaultSoftDTWLossConfig returns gamma = 1 with no normalization and no reduction.
func DefaultSoftDTWLossConfig() SoftDTWLossConfig {
	return nn.DefaultSoftDTWLossConfig()
}

// NewSoftDTWLoss creates a soft-DTW loss on backend.
//
// Inputs to Forward are [batch, len, dim] or [len, dim] tensors; gamma must be
// positive and finite.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	lossFn, err := nn.NewSoftDTWLoss[float64](nn.DefaultSoftDTWLossConfig(), backend)
func NewSoftDTWLoss[T tensor.DType, B SoftDTWBackend](cfg SoftDTWLossConfig, backend B) (*SoftDTWLoss[T, B], error) {
	return nn.NewSoftDTWLoss[T](cfg, backend)
}
