// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/Ivorforce/tslearn/internal/nn"
	"github.com/Ivorforce/tslearn/internal/optim"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// Optimizer updates parameters from the map returned by autodiff.Backward.
type Optimizer = optim.Optimizer

// Config holds the learning rate shared by every optimizer.
type Config = optim.Config

// SGD is gradient descent with optional momentum.
type SGD[T tensor.DType, B tensor.Backend] = optim.SGD[T, B]

type SGDConfig = optim.SGDConfig

// NewSGD returns an SGD optimizer over params.
func NewSGD[T tensor.DType, B tensor.Backend](params []*nn.Parameter[T, B], config SGDConfig, backend B) *SGD[T, B] {
	return optim.NewSGD(params, config, backend)
}

// Adam keeps bias-corrected first and second moment estimates per element.
type Adam[T tensor.DType, B tensor.Backend] = optim.Adam[T, B]

type AdamConfig = optim.AdamConfig

// NewAdam returns an Adam optimizer over params. Zero Betas and Eps take the
// usual defaults (0.9, 0.999) and 1e-8.
func NewAdam[T tensor.DType, B tensor.Backend](params []*nn.Parameter[T, B], config AdamConfig, backend B) *Adam[T, B] {
	return optim.NewAdam(params, config, backend)
}
