// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensors for soft-DTW computations.
//
// # Overview
//
// Tensors carry batches of time series and cost matrices between backends:
//   - Generic type-safe tensors (Tensor[T, B]) over float32 and float64
//   - Single-element broadcasting for element-wise operations
//   - Zero-copy views for reshapes
//
// # Layout
//
// Series batches are [batch, len, dim] and cost matrices are
// [batch, rows, cols], both row-major.
//
// # Basic Usage
//
//	import (
//	    "github.com/Ivorforce/tslearn/backend/cpu"
//	    "github.com/Ivorforce/tslearn/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x, _ := tensor.FromSlice([]float64{0, 1, 2}, tensor.Shape{1, 3, 1}, backend)
//	    y := x.MulScalar(2).AddScalar(1)
//	    fmt.Println(y.Data()) // [1 3 5]
//	}
package tensor
