package optim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ivorforce/tslearn/internal/autodiff"
	"github.com/Ivorforce/tslearn/internal/backend/cpu"
	"github.com/Ivorforce/tslearn/internal/nn"
	"github.com/Ivorforce/tslearn/internal/optim"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

type backendT = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func gradOf(t *testing.T, values []float32) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(tensor.Shape{len(values)}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(r.AsFloat32(), values)
	return r
}

func scalarParam(t *testing.T, backend backendT, v float32) *nn.Parameter[float32, backendT] {
	t.Helper()
	x, err := tensor.FromSlice([]float32{v}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	return nn.NewParameter("x", x)
}

// TestSteps checks hand-computed trajectories under a constant unit gradient.
func TestSteps(t *testing.T) {
	tests := []struct {
		name  string
		build func(p *nn.Parameter[float32, backendT], b backendT) optim.Optimizer
		start float32
		want  []float32
	}{
		{
			name: "sgd",
			build: func(p *nn.Parameter[float32, backendT], b backendT) optim.Optimizer {
				return optim.NewSGD([]*nn.Parameter[float32, backendT]{p}, optim.SGDConfig{LR: 0.1}, b)
			},
			start: 2,
			want:  []float32{1.9, 1.8},
		},
		{
			// v1 = 1, v2 = 0.9*1 + 1 = 1.9
			name: "sgd momentum",
			build: func(p *nn.Parameter[float32, backendT], b backendT) optim.Optimizer {
				return optim.NewSGD([]*nn.Parameter[float32, backendT]{p}, optim.SGDConfig{LR: 0.1, Momentum: 0.9}, b)
			},
			start: 1,
			want:  []float32{0.9, 0.71},
		},
		{
			// m̂ = v̂ = 1 after bias correction, so each step is lr.
			name: "adam",
			build: func(p *nn.Parameter[float32, backendT], b backendT) optim.Optimizer {
				return optim.NewAdam([]*nn.Parameter[float32, backendT]{p}, optim.AdamConfig{LR: 0.001}, b)
			},
			start: 1,
			want:  []float32{0.999, 0.998},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := autodiff.New(cpu.New())
			param := scalarParam(t, backend, tt.start)
			opt := tt.build(param, backend)
			grads := map[*tensor.RawTensor]*tensor.RawTensor{param.Tensor().Raw(): gradOf(t, []float32{1})}
			for i, want := range tt.want {
				opt.Step(grads)
				assert.InDelta(t, want, param.Tensor().Data()[0], 1e-5, "step %d", i+1)
			}
		})
	}
}

func TestLR(t *testing.T) {
	backend := autodiff.New(cpu.New())
	params := []*nn.Parameter[float32, backendT]{scalarParam(t, backend, 1)}

	sgd := optim.NewSGD(params, optim.SGDConfig{}, backend)
	assert.Equal(t, 0.01, sgd.GetLR())
	sgd.SetLR(0.001)
	assert.Equal(t, 0.001, sgd.GetLR())

	adam := optim.NewAdam(params, optim.AdamConfig{}, backend)
	assert.Equal(t, 0.001, adam.GetLR())
	adam.SetLR(0.5)
	assert.Equal(t, 0.5, adam.GetLR())
}

func TestZeroGrad(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := scalarParam(t, backend, 1)
	params := []*nn.Parameter[float32, backendT]{param}

	for _, opt := range []optim.Optimizer{
		optim.NewSGD(params, optim.SGDConfig{}, backend),
		optim.NewAdam(params, optim.AdamConfig{}, backend),
	} {
		g, _ := tensor.FromSlice([]float32{5}, tensor.Shape{1}, backend)
		param.SetGrad(g)
		opt.ZeroGrad()
		assert.Nil(t, param.Grad())
	}
}

// TestAdam_BiasCorrection tests that Adam applies bias correction correctly.
func TestAdam_BiasCorrection(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, _ := tensor.FromSlice([]float64{1.0}, tensor.Shape{1}, backend)
	param := nn.NewParameter("x", x)

	optimizer := optim.NewAdam([]*nn.Parameter[float64, backendT]{param}, optim.AdamConfig{LR: 0.01}, backend)
	if optimizer.GetTimestep() != 0 {
		t.Errorf("Initial timestep: got %d, want 0", optimizer.GetTimestep())
	}

	grad, _ := tensor.NewRawFromFloat64s([]float64{1.0}, tensor.Shape{1}, tensor.Float64, tensor.CPU)
	grads := map[*tensor.RawTensor]*tensor.RawTensor{param.Tensor().Raw(): grad}

	// With a constant gradient every bias-corrected step has size lr.
	for i := 1; i <= 3; i++ {
		optimizer.Step(grads)
		if optimizer.GetTimestep() != i {
			t.Errorf("After step %d, timestep: got %d, want %d", i, optimizer.GetTimestep(), i)
		}
	}
	assert.InDelta(t, 0.97, param.Tensor().Data()[0], 1e-6)
}

// TestConvergence_SimpleQuadratic tests optimizer convergence on f(x) = x².
func TestConvergence_SimpleQuadratic(t *testing.T) {
	backend := autodiff.New(cpu.New())

	optimizers := map[string]func(p *nn.Parameter[float32, backendT]) optim.Optimizer{
		"SGD": func(p *nn.Parameter[float32, backendT]) optim.Optimizer {
			return optim.NewSGD([]*nn.Parameter[float32, backendT]{p}, optim.SGDConfig{LR: 0.1, Momentum: 0.9}, backend)
		},
		"Adam": func(p *nn.Parameter[float32, backendT]) optim.Optimizer {
			return optim.NewAdam([]*nn.Parameter[float32, backendT]{p}, optim.AdamConfig{LR: 0.1}, backend)
		},
	}

	for name, build := range optimizers {
		t.Run(name, func(t *testing.T) {
			x, _ := tensor.FromSlice([]float32{3.0}, tensor.Shape{1}, backend)
			param := nn.NewParameter("x", x)
			optimizer := build(param)

			// f(x) = x², df/dx = 2x
			for i := 0; i < 100; i++ {
				currentX := param.Tensor().Raw().AsFloat32()[0]
				optimizer.Step(map[*tensor.RawTensor]*tensor.RawTensor{
					param.Tensor().Raw(): gradOf(t, []float32{2.0 * currentX}),
				})
			}

			final := param.Tensor().Raw().AsFloat32()[0]
			if math.Abs(float64(final)) > 0.1 {
				t.Errorf("%s convergence: x = %f, expected close to 0", name, final)
			}
		})
	}
}

// TestMultipleParameters tests optimizers with multiple parameters.
func TestMultipleParameters(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x1, _ := tensor.FromSlice([]float32{1.0, 2.0}, tensor.Shape{2}, backend)
	param1 := nn.NewParameter("x1", x1)
	x2, _ := tensor.FromSlice([]float32{3.0}, tensor.Shape{1}, backend)
	param2 := nn.NewParameter("x2", x2)
	x3, _ := tensor.FromSlice([]float32{4.0}, tensor.Shape{1}, backend)
	frozen := nn.NewParameter("x3", x3)

	optimizer := optim.NewSGD(
		[]*nn.Parameter[float32, backendT]{param1, param2, frozen},
		optim.SGDConfig{LR: 0.1},
		backend,
	)

	optimizer.Step(map[*tensor.RawTensor]*tensor.RawTensor{
		param1.Tensor().Raw(): gradOf(t, []float32{1.0, 2.0}),
		param2.Tensor().Raw(): gradOf(t, []float32{0.5}),
	})

	assert.InDeltaSlice(t, []float32{0.9, 1.8}, param1.Tensor().Data(), 1e-6)
	assert.InDelta(t, 2.95, param2.Tensor().Data()[0], 1e-6)
	assert.Equal(t, float32(4), frozen.Tensor().Data()[0], "parameter without gradient")
}

// TestAdam_SoftDTWFit fits a series to a target by descending the soft-DTW loss.
func TestAdam_SoftDTWFit(t *testing.T) {
	backend := autodiff.New(cpu.New())
	lossFn, err := nn.NewSoftDTWLoss[float64](nn.SoftDTWLossConfig{Gamma: 0.1}, backend)
	require.NoError(t, err)

	target, _ := tensor.FromSlice([]float64{0, 1, 2, 1, 0}, tensor.Shape{5, 1}, backend)
	z, _ := tensor.FromSlice(make([]float64, 5), tensor.Shape{5, 1}, backend)
	param := nn.NewParameter("z", z)
	optimizer := optim.NewAdam([]*nn.Parameter[float64, backendT]{param}, optim.AdamConfig{LR: 0.1}, backend)

	step := func() float64 {
		backend.Tape().Clear()
		backend.Tape().StartRecording()
		loss, err := lossFn.Forward(param.Tensor(), target)
		require.NoError(t, err)
		grads := autodiff.Backward(loss, backend)
		backend.Tape().StopRecording()

		optimizer.Step(grads)
		optimizer.ZeroGrad()
		return loss.Item()
	}

	first := step()
	var last float64
	for i := 0; i < 200; i++ {
		last = step()
	}
	assert.Less(t, last, first/10, "loss should drop by an order of magnitude")
}
