// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/Ivorforce/tslearn/internal/tensor"

// Backend is implemented by backend/cpu and by the autodiff decorator that
// wraps it. Element-wise operations accept equal shapes or a single-element
// operand.
type Backend interface {
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	MulScalar(x *RawTensor, scalar float64) *RawTensor
	AddScalar(x *RawTensor, scalar float64) *RawTensor

	Sum(x *RawTensor) *RawTensor                     // rank-0 total
	Reshape(t *RawTensor, newShape Shape) *RawTensor // shares storage

	Name() string
	Device() Device
}

var _ Backend = tensor.Backend(nil)
