package ops

import (
	"testing"

	"github.com/Ivorforce/tslearn/internal/backend/cpu"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// TestReduceBroadcast tests reduction of a broadcast gradient.
func TestReduceBroadcast(t *testing.T) {
	backend := cpu.New()

	grad, _ := tensor.NewRawFromFloat64s([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.Float64, tensor.CPU)

	same := reduceBroadcast(grad, tensor.Shape{2, 2}, backend)
	if same == grad {
		t.Error("reduceBroadcast should not alias a same-shape gradient")
	}
	if same.AsFloat64()[3] != 4 {
		t.Errorf("copy = %v", same.AsFloat64())
	}

	for _, target := range []tensor.Shape{{1}, {}, {1, 1}} {
		r := reduceBroadcast(grad, target, backend)
		if !r.Shape().Equal(target) {
			t.Errorf("shape = %v, want %v", r.Shape(), target)
		}
		if r.AsFloat64()[0] != 10 {
			t.Errorf("sum = %v, want 10", r.AsFloat64()[0])
		}
	}
}

// TestReduceBroadcast_Panics tests that non-broadcast shapes are rejected.
func TestReduceBroadcast_Panics(t *testing.T) {
	backend := cpu.New()
	grad, _ := tensor.NewRawFromFloat64s([]float64{1, 2, 3, 4}, tensor.Shape{4}, tensor.Float64, tensor.CPU)

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	reduceBroadcast(grad, tensor.Shape{2}, backend)
}

// TestRank3 tests dimension extraction.
func TestRank3(t *testing.T) {
	r, _ := tensor.NewRaw(tensor.Shape{2, 3, 4}, tensor.Float32, tensor.CPU)
	b, m, n := rank3(r)
	if b != 2 || m != 3 || n != 4 {
		t.Errorf("rank3 = %d, %d, %d", b, m, n)
	}
}
