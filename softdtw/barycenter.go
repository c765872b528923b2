// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package softdtw

import "github.com/Ivorforce/tslearn/internal/barycenter"

// BarycenterConfig controls Barycenter.
type BarycenterConfig = barycenter.Config

// BarycenterResult is the outcome of Barycenter.
type BarycenterResult = barycenter.Result

// BarycenterMethod selects the optimizer used by Barycenter.
type BarycenterMethod = barycenter.Method

// Barycenter optimizers.
const (
	BarycenterAdam = barycenter.Adam
	BarycenterSGD  = barycenter.SGD
)

// Barycenter errors.
var (
	ErrEmptyDataset = barycenter.ErrEmptyDataset
	ErrWeights      = barycenter.ErrWeights
)

// DefaultBarycenterConfig returns gamma 1 and 100 Adam steps at LR 0.1.
func DefaultBarycenterConfig() BarycenterConfig {
	return barycenter.DefaultConfig()
}

// Barycenter returns the series minimizing the weighted sum of soft-DTW
// values to every member of dataset.
//
// Example:
//
//	cfg := softdtw.DefaultBarycenterConfig()
//	cfg.Length = 32
//	res, err := softdtw.Barycenter(dataset, cfg)
func Barycenter(dataset []Series, cfg BarycenterConfig) (BarycenterResult, error) {
	return barycenter.Compute(dataset, cfg)
}
