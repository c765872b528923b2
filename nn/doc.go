// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides soft-DTW training components.
//
// This package offers:
//   - Parameter: trainable tensors with gradient tracking
//   - SoftDTWLoss: differentiable soft-DTW between batches of time series
//   - Module: interface for components that own parameters
//
// Example:
//
//	import (
//	    "github.com/Ivorforce/tslearn/autodiff"
//	    "github.com/Ivorforce/tslearn/backend/cpu"
//	    "github.com/Ivorforce/tslearn/nn"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    lossFn, _ := nn.NewSoftDTWLoss[float64](nn.SoftDTWLossConfig{
//	        Gamma:     0.1,
//	        Normalize: true,
//	        Reduction: nn.ReduceMean,
//	    }, backend)
//
//	    backend.Tape().StartRecording()
//	    loss, _ := lossFn.Forward(x, y)
//	    grads := autodiff.Backward(loss, backend)
//	}
package nn
