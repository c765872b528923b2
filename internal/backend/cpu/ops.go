package cpu

import (
	"fmt"

	"github.com/Ivorforce/tslearn/internal/tensor"
)

type binaryKind int

const (
	opAdd binaryKind = iota
	opSub
	opMul
)

// binary validates operands and dispatches on dtype.
// Operands must have equal shapes, or one of them a single element.
func (cpu *CPUBackend) binary(name string, kind binaryKind, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	outShape := a.Shape()
	switch {
	case a.Shape().Equal(b.Shape()), b.NumElements() == 1:
	case a.NumElements() == 1:
		outShape = b.Shape()
	default:
		panic(fmt.Sprintf("%s: incompatible shapes %v and %v", name, a.Shape(), b.Shape()))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		elementwise(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), kind)
	case tensor.Float64:
		elementwise(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), kind)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}
	return result
}

// elementwise computes dst[i] = a[i] op b[i]; a length-1 operand is broadcast.
func elementwise[T tensor.DType](dst, a, b []T, kind binaryKind) {
	sa, sb := 1, 1
	if len(a) == 1 {
		sa = 0
	}
	if len(b) == 1 {
		sb = 0
	}

	switch kind {
	case opAdd:
		for i := range dst {
			dst[i] = a[i*sa] + b[i*sb]
		}
	case opSub:
		for i := range dst {
			dst[i] = a[i*sa] - b[i*sb]
		}
	case opMul:
		for i := range dst {
			dst[i] = a[i*sa] * b[i*sb]
		}
	}
}
