package tensor

import "math/rand"

// Zeros allocates a zeroed tensor. It panics on an invalid shape.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	raw, err := NewRaw(shape, DataTypeOf[T](), b.Device())
	if err != nil {
		panic(err)
	}
	return New[T](raw, b)
}

func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T](shape, 1, b)
}

// Full allocates a tensor with every element set to value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return fill(shape, b, func() T { return value })
}

// Randn draws every element from N(0, 1). Seed rng for reproducible series.
func Randn[T DType, B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[T, B] {
	return fill(shape, b, func() T { return T(rng.NormFloat64()) })
}

func fill[T DType, B Backend](shape Shape, b B, next func() T) *Tensor[T, B] {
	t := Zeros[T](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = next()
	}
	return t
}
