package softdtw

import "github.com/Ivorforce/tslearn/internal/parallel"

// Options configures the soft-DTW loss and its derived measures.
//
// Fields:
//   - Gamma: smoothing coefficient, must be > 0. Smaller is closer to hard DTW.
//   - Normalize: subtract ½(sdtw(x, x) + sdtw(y, y)) from sdtw(x, y).
//   - Distance: pointwise cost; nil means SquaredEuclidean.
//   - Parallel: fan-out over batch elements (and pairs in CDist).
//   - WavefrontMinCells: anti-diagonal parallelism for single-element batches,
//     see DP. Zero disables it.
type Options struct {
	Gamma             float64
	Normalize         bool
	Distance          Distance
	Parallel          parallel.Config
	WavefrontMinCells int
}

// DefaultOptions returns gamma = 1, squared Euclidean cost, no normalization
// and CPU-count parallelism over the batch.
func DefaultOptions() Options {
	return Options{
		Gamma:    1.0,
		Distance: SquaredEuclidean{},
		Parallel: parallel.DefaultConfig(),
	}
}

// Validate checks the smoothing coefficient.
func (o Options) Validate() error {
	return checkGamma(o.Gamma)
}

func (o Options) distance() Distance {
	return orDefault(o.Distance)
}

func (o Options) dp() *DP {
	return &DP{Parallel: o.Parallel, WavefrontMinCells: o.WavefrontMinCells}
}
