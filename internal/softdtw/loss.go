package softdtw

import (
	"fmt"

	"github.com/Ivorforce/tslearn/internal/parallel"
)

// Loss computes the soft-DTW loss between x [b, m, d] and y [b, n, d], one
// value per batch element:
//
//	loss = sdtw(dist(x, y))                                        (Normalize == false)
//	loss = sdtw(dist(x, y)) - ½(sdtw(dist(x, x)) + sdtw(dist(y, y))) (Normalize == true)
//
// Shapes and gamma are checked before any dynamic programming runs.
func Loss(x, y Series, opts Options) ([]float64, error) {
	if err := checkPair(x, y); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	dp, dist := opts.dp(), opts.distance()
	loss, err := value(dp, dist, x, y, opts)
	if err != nil {
		return nil, err
	}
	if !opts.Normalize {
		return loss, nil
	}

	xx, err := value(dp, dist, x, x, opts)
	if err != nil {
		return nil, err
	}
	yy, err := value(dp, dist, y, y, opts)
	if err != nil {
		return nil, err
	}
	for b := range loss {
		loss[b] -= 0.5 * (xx[b] + yy[b])
	}
	return loss, nil
}

// LossGrad computes Loss together with its gradients with respect to x and y.
// It is the manual two-function path for callers without an autodiff system.
// The distance must implement DistanceGrad.
func LossGrad(x, y Series, opts Options) (loss []float64, gx, gy Series, err error) {
	if err = checkPair(x, y); err != nil {
		return nil, Series{}, Series{}, err
	}
	if err = opts.Validate(); err != nil {
		return nil, Series{}, Series{}, err
	}
	dist, ok := opts.distance().(DistanceGrad)
	if !ok {
		return nil, Series{}, Series{}, fmt.Errorf("%w: %T", ErrNotDifferentiable, opts.distance())
	}

	dp := opts.dp()
	gx, gy = zerosLike(x), zerosLike(y)

	loss, err = accumulate(dp, dist, x, y, 1, gx, gy, opts)
	if err != nil {
		return nil, Series{}, Series{}, err
	}
	if !opts.Normalize {
		return loss, gx, gy, nil
	}

	xx, err := accumulate(dp, dist, x, x, -0.5, gx, gx, opts)
	if err != nil {
		return nil, Series{}, Series{}, err
	}
	yy, err := accumulate(dp, dist, y, y, -0.5, gy, gy, opts)
	if err != nil {
		return nil, Series{}, Series{}, err
	}
	for b := range loss {
		loss[b] -= 0.5 * (xx[b] + yy[b])
	}
	return loss, gx, gy, nil
}

// value evaluates one soft-DTW term per batch element.
func value(dp *DP, dist Distance, x, y Series, opts Options) ([]float64, error) {
	d := pairwise(dist, x, y, opts.Parallel)
	costs, _, err := dp.Forward(d, opts.Gamma)
	return costs, err
}

// accumulate evaluates one term and adds scale * d(term)/dx into gx and
// scale * d(term)/dy into gy.
func accumulate(dp *DP, dist DistanceGrad, x, y Series, scale float64, gx, gy Series, opts Options) ([]float64, error) {
	d := pairwise(dist, x, y, opts.Parallel)
	costs, r, err := dp.Forward(d, opts.Gamma)
	if err != nil {
		return nil, err
	}
	e, err := dp.Backward(d, r, opts.Gamma, []float64{scale})
	if err != nil {
		return nil, err
	}
	// Elements write disjoint slices of gx and gy, so they may run concurrently.
	parallel.For(x.Batch, func(b int) {
		dist.Backprop(gx.Element(b), gy.Element(b), e.Element(b),
			x.Element(b), y.Element(b), x.Len, y.Len, x.Dim)
	}, opts.Parallel)
	return costs, nil
}
