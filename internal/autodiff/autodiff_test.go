package autodiff_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ivorforce/tslearn/internal/autodiff"
	"github.com/Ivorforce/tslearn/internal/backend/cpu"
	"github.com/Ivorforce/tslearn/internal/parallel"
	"github.com/Ivorforce/tslearn/internal/softdtw"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

func newBackend() *autodiff.AutodiffBackend[*cpu.CPUBackend] {
	return autodiff.New(cpu.NewWithConfig(cpu.Config{Parallel: parallel.Sequential()}))
}

// TestAutodiffBackend_Name tests the Name method.
func TestAutodiffBackend_Name(t *testing.T) {
	backend := autodiff.New(cpu.New())
	expected := "Autodiff(CPU)"
	if backend.Name() != expected {
		t.Errorf("Name() = %s, want %s", backend.Name(), expected)
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want %v", backend.Device(), tensor.CPU)
	}
}

// TestTape_Recording tests tape recording on/off.
func TestTape_Recording(t *testing.T) {
	backend := newBackend()
	tape := backend.Tape()

	if tape.IsRecording() {
		t.Error("Tape should not be recording initially")
	}

	a, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, backend)
	backend.Add(a.Raw(), a.Raw())
	assert.Equal(t, 0, tape.NumOps(), "nothing is recorded before StartRecording")

	tape.StartRecording()
	backend.Add(a.Raw(), a.Raw())
	backend.MulScalar(a.Raw(), 2)
	assert.Equal(t, 2, tape.NumOps())

	// Clear preserves recording state.
	tape.Clear()
	assert.Equal(t, 0, tape.NumOps())
	assert.True(t, tape.IsRecording())

	tape.StopRecording()
	assert.False(t, tape.IsRecording())
}

// TestNoGrad tests that NoGrad disables gradient recording and restores state.
func TestNoGrad(t *testing.T) {
	backend := newBackend()
	tape := backend.Tape()
	tape.StartRecording()

	a, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, backend)
	backend.Add(a.Raw(), a.Raw())
	before := tape.NumOps()

	backend.NoGrad(func() {
		assert.False(t, tape.IsRecording())
		backend.Mul(a.Raw(), a.Raw())
		backend.NoGrad(func() {
			backend.Sub(a.Raw(), a.Raw())
		})
		assert.False(t, tape.IsRecording(), "nested NoGrad keeps recording off")
	})

	assert.Equal(t, before, tape.NumOps())
	assert.True(t, tape.IsRecording())
}

// TestBackward_Arithmetic checks gradients of f = sum((a + b) * a - 3b + 1).
func TestBackward_Arithmetic(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	a, _ := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, backend)
	b, _ := tensor.FromSlice([]float64{4, 5, 6}, tensor.Shape{3}, backend)

	f := a.Add(b).Mul(a).Sub(b.MulScalar(3)).AddScalar(1).Sum()
	grads := autodiff.Backward(f, backend)

	// df/da = 2a + b, df/db = a - 3
	assert.Equal(t, []float64{6, 9, 12}, grads[a.Raw()].AsFloat64())
	assert.Equal(t, []float64{-2, -1, 0}, grads[b.Raw()].AsFloat64())
}

// TestBackward_GradientAccumulation checks that a reused input sums its gradients.
func TestBackward_GradientAccumulation(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float64{3}, tensor.Shape{1}, backend)
	y := x.Mul(x).Add(x) // x² + x

	grads := autodiff.Backward(y, backend)
	assert.Equal(t, 7.0, grads[x.Raw()].AsFloat64()[0])
}

// TestBackward_Broadcast checks the summed gradient of a broadcast operand.
func TestBackward_Broadcast(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	w, _ := tensor.FromSlice([]float64{2}, tensor.Shape{1}, backend)
	x, _ := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, backend)

	grads := autodiff.Backward(x.Mul(w).Sum(), backend)
	assert.Equal(t, []float64{6}, grads[w.Raw()].AsFloat64())
	assert.True(t, grads[w.Raw()].Shape().Equal(tensor.Shape{1}))
	assert.Equal(t, []float64{2, 2, 2}, grads[x.Raw()].AsFloat64())
}

// TestBackward_Reshape checks that gradients reach the tensor before a reshape.
func TestBackward_Reshape(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{4}, backend)
	y := x.Reshape(2, 2).MulScalar(5).Sum()

	grads := autodiff.Backward(y, backend)
	g := grads[x.Raw()]
	require.NotNil(t, g)
	assert.True(t, g.Shape().Equal(tensor.Shape{4}))
	assert.Equal(t, []float64{5, 5, 5, 5}, g.AsFloat64())
}

// TestBackward_SeedsRequestedOutput checks seeding at a tensor that is not the last op's output.
func TestBackward_SeedsRequestedOutput(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, backend)
	y := x.MulScalar(3)
	_ = x.MulScalar(100) // recorded after y

	grads := autodiff.Backward(y, backend)
	assert.Equal(t, []float64{3, 3}, grads[x.Raw()].AsFloat64())
}

func randomRaw(rng *rand.Rand, shape tensor.Shape) []float64 {
	out := make([]float64, shape.NumElements())
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}

// TestSoftDTW_MatchesLossGrad composes the loss from recorded ops and compares
// the taped gradients with the manual LossGrad path.
func TestSoftDTW_MatchesLossGrad(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	xData := randomRaw(rng, tensor.Shape{3, 5, 2})
	yData := randomRaw(rng, tensor.Shape{3, 4, 2})
	const gamma = 0.6

	for _, normalize := range []bool{false, true} {
		backend := newBackend()
		backend.Tape().StartRecording()

		x, err := tensor.FromSlice(xData, tensor.Shape{3, 5, 2}, backend)
		require.NoError(t, err)
		y, err := tensor.FromSlice(yData, tensor.Shape{3, 4, 2}, backend)
		require.NoError(t, err)

		sdtw := func(a, b *tensor.RawTensor) *tensor.RawTensor {
			d, err := backend.PairwiseDistance(a, b, nil)
			require.NoError(t, err)
			c, err := backend.SoftDTW(d, gamma)
			require.NoError(t, err)
			return c
		}

		loss := sdtw(x.Raw(), y.Raw())
		if normalize {
			self := backend.Add(sdtw(x.Raw(), x.Raw()), sdtw(y.Raw(), y.Raw()))
			loss = backend.Sub(loss, backend.MulScalar(self, 0.5))
		}
		grads := autodiff.Backward(tensor.New[float64](loss, backend), backend)

		xs, _ := softdtw.NewSeries(xData, 3, 5, 2)
		ys, _ := softdtw.NewSeries(yData, 3, 4, 2)
		opts := softdtw.DefaultOptions()
		opts.Gamma = gamma
		opts.Normalize = normalize
		want, gx, gy, err := softdtw.LossGrad(xs, ys, opts)
		require.NoError(t, err)

		assert.InDeltaSlice(t, want, loss.AsFloat64(), 1e-12, "normalize=%v", normalize)
		assert.InDeltaSlice(t, gx.Data, grads[x.Raw()].AsFloat64(), 1e-10, "normalize=%v", normalize)
		assert.InDeltaSlice(t, gy.Data, grads[y.Raw()].AsFloat64(), 1e-10, "normalize=%v", normalize)
	}
}

// TestSoftDTW_GoldenCostGradient checks dL/dD on the reference 2×2 case.
func TestSoftDTW_GoldenCostGradient(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float64{0, 1}, tensor.Shape{1, 2, 1}, backend)
	y, _ := tensor.FromSlice([]float64{0, 2}, tensor.Shape{1, 2, 1}, backend)

	d, err := backend.PairwiseDistance(x.Raw(), y.Raw(), nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 4, 1, 1}, d.AsFloat64())

	costs, err := backend.SoftDTW(d, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.6734373587325295, costs.AsFloat64()[0], 1e-12)

	grads := autodiff.Backward(tensor.New[float64](costs, backend), backend)
	want := []float64{1.0, 0.013212886953789417, 0.26538792877224193, 1.0}
	assert.InDeltaSlice(t, want, grads[d].AsFloat64(), 1e-12)
}

// TestSoftDTW_FiniteDifferences checks the full chain against central differences.
func TestSoftDTW_FiniteDifferences(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	xData := randomRaw(rng, tensor.Shape{1, 4, 3})
	yData := randomRaw(rng, tensor.Shape{1, 6, 3})
	const gamma = 0.3

	value := func(xd []float64) float64 {
		xs, _ := softdtw.NewSeries(xd, 1, 4, 3)
		ys, _ := softdtw.NewSeries(yData, 1, 6, 3)
		opts := softdtw.DefaultOptions()
		opts.Gamma = gamma
		loss, err := softdtw.Loss(xs, ys, opts)
		require.NoError(t, err)
		return loss[0]
	}

	backend := newBackend()
	backend.Tape().StartRecording()
	x, _ := tensor.FromSlice(xData, tensor.Shape{1, 4, 3}, backend)
	y, _ := tensor.FromSlice(yData, tensor.Shape{1, 6, 3}, backend)
	d, err := backend.PairwiseDistance(x.Raw(), y.Raw(), nil)
	require.NoError(t, err)
	costs, err := backend.SoftDTW(d, gamma)
	require.NoError(t, err)
	gx := autodiff.Backward(tensor.New[float64](costs, backend), backend)[x.Raw()].AsFloat64()

	const h = 1e-6
	for k := range xData {
		plus := append([]float64(nil), xData...)
		minus := append([]float64(nil), xData...)
		plus[k] += h
		minus[k] -= h
		numeric := (value(plus) - value(minus)) / (2 * h)
		if math.Abs(numeric-gx[k]) > 1e-5 {
			t.Errorf("grad[%d] = %v, numeric %v", k, gx[k], numeric)
		}
	}
}

// TestSoftDTW_NonDifferentiableDistance checks that a plain DistanceFunc stops gradient flow.
func TestSoftDTW_NonDifferentiableDistance(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	ones := softdtw.DistanceFunc(func(dst, _, _ []float64, _, _, _ int) {
		for i := range dst {
			dst[i] = 1
		}
	})
	x, _ := tensor.FromSlice([]float64{0, 1}, tensor.Shape{1, 2, 1}, backend)
	d, err := backend.PairwiseDistance(x.Raw(), x.Raw(), ones)
	require.NoError(t, err)
	costs, err := backend.SoftDTW(d, 1)
	require.NoError(t, err)

	grads := autodiff.Backward(tensor.New[float64](costs, backend), backend)
	assert.NotNil(t, grads[d])
	assert.Nil(t, grads[x.Raw()])
}

// TestSoftDTW_Float32 checks that float32 tensors keep their dtype through the chain.
func TestSoftDTW_Float32(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float32{0, 1}, tensor.Shape{1, 2, 1}, backend)
	y, _ := tensor.FromSlice([]float32{0, 2}, tensor.Shape{1, 2, 1}, backend)
	d, err := backend.PairwiseDistance(x.Raw(), y.Raw(), nil)
	require.NoError(t, err)
	costs, err := backend.SoftDTW(d, 1)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, costs.DType())

	grads := autodiff.Backward(tensor.New[float32](costs, backend), backend)
	g := grads[x.Raw()]
	require.NotNil(t, g)
	assert.Equal(t, tensor.Float32, g.DType())
	assert.Len(t, g.AsFloat32(), 2)
}

// TestSoftDTW_Errors checks error propagation from the kernels.
func TestSoftDTW_Errors(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float64{0, 1}, tensor.Shape{1, 2, 1}, backend)
	y, _ := tensor.FromSlice([]float64{0, 1, 2, 3}, tensor.Shape{2, 2, 1}, backend)
	_, err := backend.PairwiseDistance(x.Raw(), y.Raw(), nil)
	assert.ErrorIs(t, err, softdtw.ErrShapeMismatch)

	d, err := backend.PairwiseDistance(x.Raw(), x.Raw(), nil)
	require.NoError(t, err)
	_, err = backend.SoftDTW(d, -1)
	assert.ErrorIs(t, err, softdtw.ErrInvalidGamma)

	flat, _ := tensor.FromSlice([]float64{0, 1}, tensor.Shape{2}, backend)
	_, err = backend.SoftDTW(flat.Raw(), 1)
	assert.ErrorIs(t, err, softdtw.ErrBadShape)

	mock := autodiff.New(tensor.NewMockBackend())
	_, err = mock.SoftDTW(d, 1)
	assert.ErrorIs(t, err, autodiff.ErrNoKernels)
	assert.Nil(t, mock.SoftDTWFunction())
}
