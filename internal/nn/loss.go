package nn

import (
	"fmt"

	"github.com/Ivorforce/tslearn/internal/softdtw"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// Reduction selects how per-element losses are combined.
type Reduction int

const (
	// ReduceNone returns one loss per batch element (shape [b]).
	ReduceNone Reduction = iota
	// ReduceMean returns the mean over the batch (shape [1]).
	ReduceMean
	// ReduceSum returns the sum over the batch (shape [1]).
	ReduceSum
)

// String returns the reduction name.
func (r Reduction) String() string {
	switch r {
	case ReduceNone:
		return "none"
	case ReduceMean:
		return "mean"
	case ReduceSum:
		return "sum"
	default:
		return fmt.Sprintf("Reduction(%d)", int(r))
	}
}

// SoftDTWLossConfig configures a SoftDTWLoss.
type SoftDTWLossConfig struct {
	Gamma     float64          // Smoothing coefficient, must be > 0
	Normalize bool             // Subtract ½(sdtw(x, x) + sdtw(y, y))
	Distance  softdtw.Distance // Pointwise cost; nil means squared Euclidean
	Reduction Reduction        // Batch reduction; zero value is ReduceNone
}

// DefaultSoftDTWLossConfig returns gamma = 1 with no normalization and no reduction.
func DefaultSoftDTWLossConfig() SoftDTWLossConfig {
	return SoftDTWLossConfig{Gamma: 1.0}
}

// SoftDTWLoss computes the soft-DTW discrepancy between two batches of series.
//
//	loss = sdtw(dist(x, y))
//	loss = sdtw(dist(x, y)) - ½(sdtw(dist(x, x)) + sdtw(dist(y, y)))   (Normalize)
//
// Every step is a backend operation, so with an autodiff backend the result
// can be differentiated with respect to both x and y.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	lossFn, _ := nn.NewSoftDTWLoss[float64](nn.SoftDTWLossConfig{Gamma: 0.1}, backend)
//
//	backend.Tape().StartRecording()
//	loss, err := lossFn.Forward(x, y) // x [b, m, d], y [b, n, d]
//	grads := autodiff.Backward(loss, backend)
type SoftDTWLoss[T tensor.DType, B SoftDTWBackend] struct {
	config  SoftDTWLossConfig
	backend B
}

// NewSoftDTWLoss creates a soft-DTW loss. Returns softdtw.ErrInvalidGamma
// when cfg.Gamma is not positive.
func NewSoftDTWLoss[T tensor.DType, B SoftDTWBackend](cfg SoftDTWLossConfig, backend B) (*SoftDTWLoss[T, B], error) {
	if err := (softdtw.Options{Gamma: cfg.Gamma}).Validate(); err != nil {
		return nil, fmt.Errorf("soft-DTW loss: %w", err)
	}
	switch cfg.Reduction {
	case ReduceNone, ReduceMean, ReduceSum:
	default:
		return nil, fmt.Errorf("soft-DTW loss: unknown reduction %v", cfg.Reduction)
	}
	return &SoftDTWLoss[T, B]{config: cfg, backend: backend}, nil
}

// Config returns the loss configuration.
func (l *SoftDTWLoss[T, B]) Config() SoftDTWLossConfig {
	return l.config
}

// Forward computes the loss between x and y.
//
// Inputs are [b, m, d] and [b, n, d], or [m, d] and [n, d] for a single pair
// (promoted to batch 1). Batch size and feature dimension must agree; lengths
// may differ. Shapes are checked before any dynamic programming runs.
func (l *SoftDTWLoss[T, B]) Forward(x, y *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	xr, err := l.promote(x.Raw())
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	yr, err := l.promote(y.Raw())
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	xs, ys := xr.Shape(), yr.Shape()
	if xs[0] != ys[0] || xs[2] != ys[2] {
		return nil, fmt.Errorf("%w: x is %v, y is %v", softdtw.ErrShapeMismatch, x.Shape(), y.Shape())
	}

	loss, err := l.term(xr, yr)
	if err != nil {
		return nil, err
	}
	if l.config.Normalize {
		xx, err := l.term(xr, xr)
		if err != nil {
			return nil, err
		}
		yy, err := l.term(yr, yr)
		if err != nil {
			return nil, err
		}
		self := l.backend.MulScalar(l.backend.Add(xx, yy), 0.5)
		loss = l.backend.Sub(loss, self)
	}

	return tensor.New[T](l.reduce(loss), l.backend), nil
}

// Parameters returns nil (loss functions have no trainable parameters).
func (l *SoftDTWLoss[T, B]) Parameters() []*Parameter[T, B] {
	return nil
}

// term computes sdtw(dist(a, b)) per batch element.
func (l *SoftDTWLoss[T, B]) term(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	d, err := l.backend.PairwiseDistance(a, b, l.config.Distance)
	if err != nil {
		return nil, err
	}
	return l.backend.SoftDTW(d, l.config.Gamma)
}

// promote reshapes a single [m, d] series to [1, m, d].
func (l *SoftDTWLoss[T, B]) promote(r *tensor.RawTensor) (*tensor.RawTensor, error) {
	shape := r.Shape()
	switch len(shape) {
	case 3:
		return r, nil
	case 2:
		return l.backend.Reshape(r, tensor.Shape{1, shape[0], shape[1]}), nil
	default:
		return nil, fmt.Errorf("%w: want [batch, len, dim] or [len, dim], got %v", softdtw.ErrBadShape, shape)
	}
}

func (l *SoftDTWLoss[T, B]) reduce(loss *tensor.RawTensor) *tensor.RawTensor {
	switch l.config.Reduction {
	case ReduceSum:
		return l.backend.Reshape(l.backend.Sum(loss), tensor.Shape{1})
	case ReduceMean:
		mean := l.backend.MulScalar(l.backend.Sum(loss), 1/float64(loss.NumElements()))
		return l.backend.Reshape(mean, tensor.Shape{1})
	default:
		return loss
	}
}
