package tensor

import "fmt"

// Tensor pairs a RawTensor with an element type and the backend that
// computes on it. Arithmetic methods (ops.go) dispatch to that backend, so
// the same loss code runs eagerly on cpu or recorded on an autodiff backend.
//
//	x := tensor.Zeros[float64](Shape{2, 16, 3}, backend) // [batch, len, dim]
//	y := x.AddScalar(1)
type Tensor[T DType, B Backend] struct {
	raw     *RawTensor
	backend B
	grad    *Tensor[T, B]
}

// New wraps raw. The element type of raw must match T.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return &Tensor[T, B]{raw: raw, backend: b}
}

// FromSlice copies data into a new tensor of the given shape.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	if n := shape.NumElements(); n != len(data) {
		return nil, fmt.Errorf("shape %v holds %d elements, got %d", shape, n, len(data))
	}
	raw, err := NewRaw(shape, DataTypeOf[T](), b.Device())
	if err != nil {
		return nil, err
	}
	t := New[T](raw, b)
	copy(t.Data(), data)
	return t, nil
}

func (t *Tensor[T, B]) Shape() Shape { return t.raw.Shape() }
func (t *Tensor[T, B]) DType() DataType { return t.raw.DType() }
func (t *Tensor[T, B]) Device() Device { return t.raw.Device() }
func (t *Tensor[T, B]) NumElements() int { return t.raw.NumElements() }
func (t *Tensor[T, B]) Raw() *RawTensor { return t.raw }
func (t *Tensor[T, B]) Backend() B { return t.backend }
func (t *Tensor[T, B]) Grad() *Tensor[T, B] { return t.grad }

// SetGrad attaches a gradient. Parameters use it to hand gradients to the
// optimizers.
func (t *Tensor[T, B]) SetGrad(grad *Tensor[T, B]) {
	t.grad = grad
}

// Data is a zero-copy view of the elements; writes go straight to the tensor.
func (t *Tensor[T, B]) Data() []T {
	if t.raw.DType() == Float32 {
		return any(t.raw.AsFloat32()).([]T)
	}
	return any(t.raw.AsFloat64()).([]T)
}

// Item returns the only element of a single-element tensor, such as a
// reduced loss.
func (t *Tensor[T, B]) Item() T {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("tensor: Item on shape %v", t.Shape()))
	}
	return t.Data()[0]
}

// At reads one element; x.At(b, i, k) is feature k of step i of series b.
func (t *Tensor[T, B]) At(indices ...int) T {
	return t.Data()[t.Shape().offset(indices)]
}

// Set writes one element.
func (t *Tensor[T, B]) Set(value T, indices ...int) {
	t.Data()[t.Shape().offset(indices)] = value
}

func (t *Tensor[T, B]) String() string {
	return fmt.Sprintf("Tensor[%s]%v on %s", t.raw.DType(), t.raw.Shape(), t.raw.Device())
}

// Clone deep-copies the data. The gradient is not carried over.
func (t *Tensor[T, B]) Clone() *Tensor[T, B] {
	return New[T](t.raw.Clone(), t.backend)
}
