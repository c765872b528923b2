// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for soft-DTW models.
//
// This package offers:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Example:
//
//	import (
//	    "github.com/Ivorforce/tslearn/nn"
//	    "github.com/Ivorforce/tslearn/optim"
//	)
//
//	func main() {
//	    z := nn.NewParameter("z", init)
//	    optimizer := optim.NewAdam([]*nn.Parameter[float64, B]{z}, optim.AdamConfig{LR: 0.1}, backend)
//
//	    for range iterations {
//	        backend.Tape().Clear()
//	        backend.Tape().StartRecording()
//	        loss, _ := lossFn.Forward(z.Tensor(), target)
//	        grads := autodiff.Backward(loss, backend)
//	        backend.Tape().StopRecording()
//
//	        optimizer.Step(grads)
//	        optimizer.ZeroGrad()
//	    }
//	}
package optim
