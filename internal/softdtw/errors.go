package softdtw

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors. Match them with errors.Is.
var (
	// ErrShapeMismatch indicates the two inputs disagree on batch size or feature dimension.
	ErrShapeMismatch = errors.New("softdtw: shape mismatch")

	// ErrInvalidGamma indicates a smoothing coefficient that is not a finite positive number.
	ErrInvalidGamma = errors.New("softdtw: gamma must be positive and finite")

	// ErrDivisionByZero is joined with ErrInvalidGamma when gamma is exactly zero.
	ErrDivisionByZero = errors.New("softdtw: division by zero")

	// ErrEmptySeries indicates a batch, length or dimension of zero.
	ErrEmptySeries = errors.New("softdtw: series must be non-empty")

	// ErrBadShape indicates a data buffer whose length does not match its declared shape.
	ErrBadShape = errors.New("softdtw: data length does not match shape")

	// ErrNotDifferentiable is returned by LossGrad when the distance cannot backpropagate.
	ErrNotDifferentiable = errors.New("softdtw: distance does not implement DistanceGrad")
)

// checkGamma validates the smoothing coefficient.
func checkGamma(gamma float64) error {
	switch {
	case gamma == 0:
		return fmt.Errorf("%w: %w", ErrInvalidGamma, ErrDivisionByZero)
	case !(gamma > 0) || math.IsInf(gamma, 1):
		return fmt.Errorf("%w: got %v", ErrInvalidGamma, gamma)
	}
	return nil
}
