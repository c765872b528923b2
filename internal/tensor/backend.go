package tensor

// Backend is the arithmetic a soft-DTW loss needs after the domain kernels
// have produced per-pair costs: combining terms, scaling, reducing and
// reshaping.
//
// Binary operations take operands of equal shape, or one single-element
// operand broadcast against the other. Shape or dtype misuse panics.
type Backend interface {
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	MulScalar(x *RawTensor, scalar float64) *RawTensor
	AddScalar(x *RawTensor, scalar float64) *RawTensor

	// Sum reduces every element to a rank-0 tensor.
	Sum(x *RawTensor) *RawTensor
	Reshape(t *RawTensor, newShape Shape) *RawTensor

	Name() string
	Device() Device
}
