// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/Ivorforce/tslearn/internal/tensor"
)

// DType is a constraint for tensor element types: float32 or float64.
type DType = tensor.DType

// DataType is the runtime element-type tag.
type DataType = tensor.DataType

// Element types. Soft-DTW kernels compute in float64 either way.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device names where tensor memory lives. Only CPU exists today.
type Device = tensor.Device

// CPU is the host device.
const CPU Device = tensor.CPU

// Shape lists dimensions outermost first. Shape{4, 32, 2} is a batch of 4
// series of 32 two-dimensional steps.
type Shape = tensor.Shape

// Tensor is a typed view over a RawTensor bound to the backend that computes
// on it. Wrap the backend with autodiff.New to record differentiable calls.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, b)
}

// Full creates a tensor with every element set to value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// Randn draws every element from N(0, 1) using rng, so a seeded rng gives
// reproducible initial series:
//
//	x := tensor.Randn[float64](tensor.Shape{8, 64, 1}, rand.New(rand.NewSource(42)), backend)
func Randn[T DType, B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[T, B] {
	return tensor.Randn[T, B](shape, rng, b)
}

// FromSlice copies data into a new tensor. The slice is laid out row-major,
// so a [1, 3, 2] series is {x00, x01, x10, x11, x20, x21}.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// New wraps a raw tensor, typically the output of a backend kernel.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// NewRaw creates a new zeroed raw tensor with the given shape, dtype, and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// NewRawFromFloat64s creates a raw tensor of dtype holding values.
// Values are narrowed when dtype is Float32.
func NewRawFromFloat64s(values []float64, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRawFromFloat64s(values, shape, dtype, device)
}
