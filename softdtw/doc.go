// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package softdtw provides differentiable soft dynamic time warping.
//
// Soft-DTW replaces the hard minimum of dynamic time warping with a smoothed
// minimum controlled by gamma > 0, which makes the alignment cost
// differentiable with respect to both series. As gamma approaches zero the
// value converges to classical DTW.
//
// # Overview
//
// This package offers:
//   - Loss and LossGrad: batched soft-DTW values and their gradients
//   - Alignment: expected alignment matrices
//   - CDist: cross soft-DTW matrices between two collections
//   - Barycenter: soft-DTW averaging of a dataset
//
// Series are row-major [batch, len, dim] buffers. Tensor-level training goes
// through nn.SoftDTWLoss and the autodiff backend instead.
//
// # Basic Usage
//
//	import "github.com/Ivorforce/tslearn/softdtw"
//
//	func main() {
//	    x, _ := softdtw.NewSeries([]float64{0, 1, 2}, 1, 3, 1)
//	    y, _ := softdtw.NewSeries([]float64{0, 2}, 1, 2, 1)
//
//	    opts := softdtw.DefaultOptions()
//	    loss, gx, gy, err := softdtw.LossGrad(x, y, opts)
//	}
package softdtw
