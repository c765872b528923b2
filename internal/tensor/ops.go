package tensor

// Arithmetic methods dispatch to the tensor's backend and wrap the result
// with the same backend, so on an autodiff backend every call is recorded.
// Operands follow Backend's broadcasting rule.

func (t *Tensor[T, B]) wrap(raw *RawTensor) *Tensor[T, B] {
	return New[T](raw, t.backend)
}

func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Add(t.raw, other.raw))
}

func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Sub(t.raw, other.raw))
}

func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Mul(t.raw, other.raw))
}

// MulScalar scales every element by s; the normalized loss uses it for the ½.
func (t *Tensor[T, B]) MulScalar(s float64) *Tensor[T, B] {
	return t.wrap(t.backend.MulScalar(t.raw, s))
}

func (t *Tensor[T, B]) AddScalar(s float64) *Tensor[T, B] {
	return t.wrap(t.backend.AddScalar(t.raw, s))
}

// Sum reduces to a rank-0 tensor.
func (t *Tensor[T, B]) Sum() *Tensor[T, B] {
	return t.wrap(t.backend.Sum(t.raw))
}

// Reshape returns a view with the same element count, for example lifting a
// single [len, dim] series to [1, len, dim].
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	return t.wrap(t.backend.Reshape(t.raw, Shape(newShape)))
}
