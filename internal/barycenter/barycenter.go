// Package barycenter computes soft-DTW barycenters.
//
// A barycenter z minimizes Σ_i w_i · sdtw(z, x_i) over a dataset of series
// that may have different lengths. The objective is built from nn.SoftDTWLoss
// on the autodiff backend and minimized with an optim optimizer.
package barycenter

import (
	"errors"
	"fmt"
	"math"

	"github.com/Ivorforce/tslearn/internal/autodiff"
	"github.com/Ivorforce/tslearn/internal/backend/cpu"
	"github.com/Ivorforce/tslearn/internal/nn"
	"github.com/Ivorforce/tslearn/internal/optim"
	"github.com/Ivorforce/tslearn/internal/parallel"
	"github.com/Ivorforce/tslearn/internal/softdtw"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

var (
	// ErrEmptyDataset is returned when there is nothing to average.
	ErrEmptyDataset = errors.New("barycenter: empty dataset")

	// ErrWeights is returned for weights of the wrong length, negative, or all zero.
	ErrWeights = errors.New("barycenter: invalid weights")
)

// Method selects the optimizer.
type Method int

const (
	// Adam is the default optimizer.
	Adam Method = iota
	// SGD is gradient descent with momentum.
	SGD
)

// Config controls Compute.
type Config struct {
	Gamma     float64          // Smoothing coefficient (default: 1)
	Length    int              // Barycenter length (default: length of Init or of the first series)
	Init      []float64        // Initial barycenter, Length×dim (default: first series, resampled)
	Weights   []float64        // One weight per series, normalized to sum 1 (default: uniform)
	MaxIter   int              // Maximum optimizer steps (default: 100)
	LR        float64          // Learning rate (default: 0.1)
	Momentum  float64          // SGD momentum
	Tol       float64          // Stop when |Δloss| < Tol; zero disables early stopping
	Method    Method           // Optimizer
	Parallel  parallel.Config  // Kernel parallelism
	Normalize bool             // Use the normalized soft-DTW discrepancy
	Distance  softdtw.Distance // Pointwise cost; nil means squared Euclidean
}

// DefaultConfig returns gamma 1, 100 Adam steps at LR 0.1 and tolerance 1e-6.
func DefaultConfig() Config {
	return Config{
		Gamma:    1.0,
		MaxIter:  100,
		LR:       0.1,
		Tol:      1e-6,
		Method:   Adam,
		Parallel: parallel.DefaultConfig(),
	}
}

// Result is the outcome of Compute.
type Result struct {
	Series     softdtw.Series // Barycenter, batch 1
	Loss       []float64      // Objective before each step
	Iterations int            // Optimizer steps taken
	Converged  bool           // Stopped on Tol before MaxIter
}

type backendT = *autodiff.AutodiffBackend[*cpu.CPUBackend]

// Compute returns the soft-DTW barycenter of dataset. Every batch element of
// every Series is one member; members may differ in length but must share
// the feature dimension.
func Compute(dataset []softdtw.Series, cfg Config) (Result, error) {
	members, dim, err := flatten(dataset)
	if err != nil {
		return Result{}, err
	}
	weights, err := normalizeWeights(cfg.Weights, len(members))
	if err != nil {
		return Result{}, err
	}
	if _, ok := cfg.Distance.(softdtw.DistanceGrad); cfg.Distance != nil && !ok {
		return Result{}, fmt.Errorf("%w: %T", softdtw.ErrNotDifferentiable, cfg.Distance)
	}
	if cfg.Gamma == 0 {
		cfg.Gamma = DefaultConfig().Gamma
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = DefaultConfig().MaxIter
	}
	if cfg.LR == 0 {
		cfg.LR = DefaultConfig().LR
	}

	backend := autodiff.New(cpu.NewWithConfig(cpu.Config{Parallel: cfg.Parallel}))
	lossFn, err := nn.NewSoftDTWLoss[float64](nn.SoftDTWLossConfig{
		Gamma:     cfg.Gamma,
		Normalize: cfg.Normalize,
		Distance:  cfg.Distance,
	}, backend)
	if err != nil {
		return Result{}, err
	}

	init, length, err := initial(cfg, members[0], dim)
	if err != nil {
		return Result{}, err
	}
	z, err := tensor.FromSlice(init, tensor.Shape{1, length, dim}, backend)
	if err != nil {
		return Result{}, err
	}
	targets := make([]*tensor.Tensor[float64, backendT], len(members))
	for i, m := range members {
		targets[i], err = tensor.FromSlice(m.data, tensor.Shape{1, m.len, dim}, backend)
		if err != nil {
			return Result{}, err
		}
	}

	param := nn.NewParameter("barycenter", z)
	params := []*nn.Parameter[float64, backendT]{param}
	var optimizer optim.Optimizer
	switch cfg.Method {
	case Adam:
		optimizer = optim.NewAdam(params, optim.AdamConfig{LR: cfg.LR}, backend)
	case SGD:
		optimizer = optim.NewSGD(params, optim.SGDConfig{LR: cfg.LR, Momentum: cfg.Momentum}, backend)
	default:
		return Result{}, fmt.Errorf("barycenter: unknown method %d", cfg.Method)
	}

	res := Result{Loss: make([]float64, 0, cfg.MaxIter)}
	tape := backend.Tape()
	for res.Iterations < cfg.MaxIter {
		tape.Clear()
		tape.StartRecording()
		objective, err := weightedLoss(backend, lossFn, param.Tensor(), targets, weights)
		if err != nil {
			tape.StopRecording()
			return Result{}, err
		}
		grads := autodiff.Backward(objective, backend)
		tape.StopRecording()

		value := objective.Item()
		res.Loss = append(res.Loss, value)
		if n := len(res.Loss); cfg.Tol > 0 && n > 1 && math.Abs(res.Loss[n-2]-value) < cfg.Tol {
			res.Converged = true
			break
		}

		optimizer.Step(grads)
		optimizer.ZeroGrad()
		res.Iterations++
	}
	tape.Clear()

	res.Series, err = softdtw.NewSeries(append([]float64(nil), z.Data()...), 1, length, dim)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// weightedLoss records Σ_i w_i · loss(z, targets[i]) and returns it with shape [1].
func weightedLoss(
	backend backendT,
	lossFn *nn.SoftDTWLoss[float64, backendT],
	z *tensor.Tensor[float64, backendT],
	targets []*tensor.Tensor[float64, backendT],
	weights []float64,
) (*tensor.Tensor[float64, backendT], error) {
	var total *tensor.RawTensor
	for i, target := range targets {
		if weights[i] == 0 {
			continue
		}
		loss, err := lossFn.Forward(z, target)
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
		term := backend.MulScalar(loss.Raw(), weights[i])
		if total == nil {
			total = term
		} else {
			total = backend.Add(total, term)
		}
	}
	return tensor.New[float64](total, backend), nil
}

type member struct {
	data []float64
	len  int
}

func flatten(dataset []softdtw.Series) ([]member, int, error) {
	var members []member
	dim := -1
	for i, s := range dataset {
		if err := s.Validate(); err != nil {
			return nil, 0, fmt.Errorf("series %d: %w", i, err)
		}
		if dim >= 0 && s.Dim != dim {
			return nil, 0, fmt.Errorf("%w: series %d has dimension %d, want %d", softdtw.ErrShapeMismatch, i, s.Dim, dim)
		}
		dim = s.Dim
		for b := 0; b < s.Batch; b++ {
			members = append(members, member{data: s.Element(b), len: s.Len})
		}
	}
	if len(members) == 0 {
		return nil, 0, ErrEmptyDataset
	}
	return members, dim, nil
}

func normalizeWeights(weights []float64, n int) ([]float64, error) {
	out := make([]float64, n)
	if weights == nil {
		for i := range out {
			out[i] = 1 / float64(n)
		}
		return out, nil
	}
	if len(weights) != n {
		return nil, fmt.Errorf("%w: %d weights for %d series", ErrWeights, len(weights), n)
	}
	var sum float64
	for i, w := range weights {
		if !(w >= 0) || math.IsInf(w, 1) {
			return nil, fmt.Errorf("%w: weight %d is %v", ErrWeights, i, w)
		}
		sum += w
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: all weights are zero", ErrWeights)
	}
	for i, w := range weights {
		out[i] = w / sum
	}
	return out, nil
}

// initial returns the starting barycenter and its length.
func initial(cfg Config, first member, dim int) ([]float64, int, error) {
	if cfg.Init != nil {
		if len(cfg.Init)%dim != 0 {
			return nil, 0, fmt.Errorf("%w: init has %d values for dimension %d", softdtw.ErrBadShape, len(cfg.Init), dim)
		}
		length := len(cfg.Init) / dim
		if cfg.Length != 0 && cfg.Length != length {
			return nil, 0, fmt.Errorf("%w: init has length %d, want %d", softdtw.ErrBadShape, length, cfg.Length)
		}
		if length == 0 {
			return nil, 0, fmt.Errorf("init: %w", softdtw.ErrEmptySeries)
		}
		return append([]float64(nil), cfg.Init...), length, nil
	}
	length := cfg.Length
	if length == 0 {
		length = first.len
	}
	if length <= 0 {
		return nil, 0, fmt.Errorf("length: %w", softdtw.ErrEmptySeries)
	}
	return Resample(first.data, first.len, dim, length), length, nil
}

// Resample linearly interpolates a length×dim series to newLen steps.
// Endpoints are preserved.
func Resample(data []float64, length, dim, newLen int) []float64 {
	out := make([]float64, newLen*dim)
	if length == 1 || newLen == 1 {
		for i := 0; i < newLen; i++ {
			copy(out[i*dim:(i+1)*dim], data[:dim])
		}
		return out
	}
	scale := float64(length-1) / float64(newLen-1)
	for i := 0; i < newLen; i++ {
		pos := float64(i) * scale
		lo := int(pos)
		if lo >= length-1 {
			copy(out[i*dim:(i+1)*dim], data[(length-1)*dim:])
			continue
		}
		frac := pos - float64(lo)
		for k := 0; k < dim; k++ {
			a, b := data[lo*dim+k], data[(lo+1)*dim+k]
			out[i*dim+k] = a + frac*(b-a)
		}
	}
	return out
}
