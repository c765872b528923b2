// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// RawTensor is untyped storage plus shape, dtype and device. Kernels and
// autodiff operations work on RawTensor; Tensor[T, B] adds the element type
// and backend on top.
//
// Float64s returns a widened copy whatever the dtype, which is what the
// soft-DTW kernels consume. AsFloat32 and AsFloat64 are zero-copy views.
type RawTensor = tensor.RawTensor
