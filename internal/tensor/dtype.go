// Package tensor provides the core tensor types used by the soft-DTW autodiff stack.
package tensor

// DType constrains the element types a Tensor may hold.
type DType interface {
	~float32 | ~float64
}

// DataType is the runtime tag for a DType.
type DataType int

// Element types. Kernels compute in float64 whatever the storage type.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the element width in bytes.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	}
	panic("tensor: unknown data type")
}

func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return "unknown"
}

// DataTypeOf returns the runtime tag for T.
func DataTypeOf[T DType]() DataType {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return Float32
	}
	return Float64
}
