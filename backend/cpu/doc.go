// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for soft-DTW tensors.
//
// The backend is pure Go. Tensors may be float32 or float64; the soft-DTW
// kernels widen to float64 and narrow their results back. Squared Euclidean
// distances use go-highway SIMD rows.
//
//	backend := cpu.New()
//
//	x, _ := tensor.FromSlice(xs, tensor.Shape{b, m, d}, backend)
//	y, _ := tensor.FromSlice(ys, tensor.Shape{b, n, d}, backend)
//
//	dist, _ := backend.PairwiseDistance(x.Raw(), y.Raw(), nil)
//	costs, _ := backend.SoftDTW(dist, 1.0) // shape [b]
//
// # Parallelism
//
// Batch elements are processed on a shared worker pool. Long single-pair
// recursions can additionally run cell-parallel along anti-diagonals; see
// Config.WavefrontMinCells. Both produce results identical to a sequential sweep.
//
// A Backend holds no mutable state and may be shared between goroutines.
package cpu
