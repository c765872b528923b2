// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/Ivorforce/tslearn/internal/backend/cpu"
	"github.com/Ivorforce/tslearn/tensor"
)

// Backend runs elementwise ops and the soft-DTW kernels on the host.
type Backend = internalcpu.CPUBackend

// Config controls kernel parallelism.
type Config = internalcpu.Config

var _ tensor.Backend = (*Backend)(nil)

// New returns a backend using DefaultConfig.
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultConfig returns CPU-count batch parallelism with the wavefront
// enabled for large single pairs.
func DefaultConfig() Config {
	return internalcpu.DefaultConfig()
}
