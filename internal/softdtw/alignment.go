package softdtw

// Alignment returns the expected soft alignment matrix between x and y
// (shape [b, m, n]) along with the soft-DTW cost of each pair.
//
// Entry (i, j) is the probability mass of alignment paths through cell
// (i, j) under the Gibbs distribution induced by gamma, which is exactly
// d sdtw / dD[i, j]. Every entry lies in [0, 1]; (0, 0) and (m-1, n-1) are 1.
// Options.Normalize is ignored.
func Alignment(x, y Series, opts Options) (Grid, []float64, error) {
	if err := checkPair(x, y); err != nil {
		return Grid{}, nil, err
	}
	if err := opts.Validate(); err != nil {
		return Grid{}, nil, err
	}

	dp := opts.dp()
	d := pairwise(opts.distance(), x, y, opts.Parallel)
	costs, r, err := dp.Forward(d, opts.Gamma)
	if err != nil {
		return Grid{}, nil, err
	}
	a, err := dp.Backward(d, r, opts.Gamma, []float64{1})
	if err != nil {
		return Grid{}, nil, err
	}
	return a, costs, nil
}
