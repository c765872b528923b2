package tensor

import (
	"fmt"
	"unsafe"
)

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
)

func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	default:
		return "Unknown"
	}
}

// RawTensor is the low-level tensor representation: a contiguous row-major
// byte buffer plus shape and type metadata. Views created by Reshaped share
// the buffer.
type RawTensor struct {
	data   []byte
	shape  Shape
	dtype  DataType
	device Device
}

// NewRaw allocates a zeroed tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		dtype:  dtype,
		device: device,
	}, nil
}

// NewRawFromFloat64s creates a RawTensor of the given dtype holding values.
// Values are narrowed when dtype is Float32.
func NewRawFromFloat64s(values []float64, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if shape.NumElements() != len(values) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(values))
	}
	raw, err := NewRaw(shape, dtype, device)
	if err != nil {
		return nil, err
	}
	raw.SetFloat64s(values)
	return raw, nil
}

// Shape returns the tensor's shape. Callers must not modify it.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

func (r *RawTensor) DType() DataType { return r.dtype }

func (r *RawTensor) Device() Device { return r.device }

func (r *RawTensor) NumElements() int { return r.shape.NumElements() }

// ByteSize is NumElements times the element width.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Data returns the backing bytes. Views created by Reshaped share them.
func (r *RawTensor) Data() []byte {
	return r.data
}

// AsFloat32 returns a zero-copy []float32 view. The dtype must be Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsFloat64 returns a zero-copy []float64 view. The dtype must be Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// Float64s returns a float64 copy of the data, widening float32 values.
func (r *RawTensor) Float64s() []float64 {
	switch r.dtype {
	case Float64:
		return append([]float64(nil), r.AsFloat64()...)
	case Float32:
		src := r.AsFloat32()
		out := make([]float64, len(src))
		for i, v := range src {
			out[i] = float64(v)
		}
		return out
	default:
		panic(fmt.Sprintf("unsupported dtype %s", r.dtype))
	}
}

// SetFloat64s overwrites the data with values, narrowing for float32 tensors.
// Panics if the length does not match.
func (r *RawTensor) SetFloat64s(values []float64) {
	if len(values) != r.NumElements() {
		panic(fmt.Sprintf("SetFloat64s: %d values for %d elements", len(values), r.NumElements()))
	}
	switch r.dtype {
	case Float64:
		copy(r.AsFloat64(), values)
	case Float32:
		dst := r.AsFloat32()
		for i, v := range values {
			dst[i] = float32(v)
		}
	default:
		panic(fmt.Sprintf("unsupported dtype %s", r.dtype))
	}
}

// Reshaped returns a view of r with a different shape and the same buffer.
func (r *RawTensor) Reshaped(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != r.NumElements() {
		return nil, fmt.Errorf("cannot reshape %v (%d elements) to %v (%d elements)",
			r.shape, r.NumElements(), shape, shape.NumElements())
	}
	return &RawTensor{
		data:   r.data,
		shape:  shape.Clone(),
		dtype:  r.dtype,
		device: r.device,
	}, nil
}

// Clone copies the buffer; the result shares nothing with r.
func (r *RawTensor) Clone() *RawTensor {
	return &RawTensor{
		data:   append([]byte(nil), r.data...),
		shape:  r.shape.Clone(),
		dtype:  r.dtype,
		device: r.device,
	}
}
