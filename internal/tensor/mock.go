package tensor

import "fmt"

var _ Backend = (*MockBackend)(nil)

// MockBackend evaluates every operation in float64 with plain loops. Tests
// use it to check the autodiff decorator without the cpu package.
type MockBackend struct{}

func NewMockBackend() *MockBackend { return &MockBackend{} }

func (m *MockBackend) Name() string   { return "mock" }
func (m *MockBackend) Device() Device { return CPU }

func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

func (m *MockBackend) MulScalar(x *RawTensor, scalar float64) *RawTensor {
	return m.unary(x, func(v float64) float64 { return v * scalar })
}

func (m *MockBackend) AddScalar(x *RawTensor, scalar float64) *RawTensor {
	return m.unary(x, func(v float64) float64 { return v + scalar })
}

func (m *MockBackend) Sum(x *RawTensor) *RawTensor {
	var sum float64
	for _, v := range x.Float64s() {
		sum += v
	}
	return m.build([]float64{sum}, Shape{}, x.DType())
}

// Reshape copies, unlike the cpu backend which returns a view.
func (m *MockBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	view, err := t.Reshaped(newShape)
	if err != nil {
		panic(err)
	}
	return view.Clone()
}

// elementWise applies op pairwise. A single-element operand is broadcast.
func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("mock: dtype %s vs %s", a.DType(), b.DType()))
	}
	outShape := a.Shape()
	switch {
	case a.Shape().Equal(b.Shape()):
	case b.NumElements() == 1:
	case a.NumElements() == 1:
		outShape = b.Shape()
	default:
		panic(fmt.Sprintf("mock: shapes %v and %v do not broadcast", a.Shape(), b.Shape()))
	}

	aData, bData := a.Float64s(), b.Float64s()
	out := make([]float64, outShape.NumElements())
	for i := range out {
		out[i] = op(aData[i%len(aData)], bData[i%len(bData)])
	}

	return m.build(out, outShape, a.DType())
}

func (m *MockBackend) unary(x *RawTensor, op func(float64) float64) *RawTensor {
	data := x.Float64s()
	for i, v := range data {
		data[i] = op(v)
	}
	return m.build(data, x.Shape(), x.DType())
}

func (m *MockBackend) build(values []float64, shape Shape, dtype DataType) *RawTensor {
	raw, err := NewRawFromFloat64s(values, shape, dtype, m.Device())
	if err != nil {
		panic(err)
	}
	return raw
}
