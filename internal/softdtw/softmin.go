package softdtw

import "math"

// SoftMin computes the smoothed minimum of three values:
//
//	softmin(a, b, c) = -gamma * log(exp(-a/gamma) + exp(-b/gamma) + exp(-c/gamma))
//
// The smallest input is factored out before scaling by gamma, so every
// exponent is <= 0 and the smallest term is exactly exp(0). Large |a|/gamma,
// including quotients beyond MaxFloat64, never overflow.
// As gamma -> 0+ the result approaches min(a, b, c) from below, with a bias of
// at most gamma*log(3).
//
// Returns an error matching ErrInvalidGamma (and ErrDivisionByZero for gamma == 0)
// if gamma is not positive.
func SoftMin(a, b, c, gamma float64) (float64, error) {
	if err := checkGamma(gamma); err != nil {
		return 0, err
	}
	return softmin(a, b, c, gamma), nil
}

// softmin is SoftMin without the gamma check. Callers guarantee gamma > 0.
func softmin(a, b, c, gamma float64) float64 {
	m := min(a, b, c)
	sum := math.Exp(-(a-m)/gamma) + math.Exp(-(b-m)/gamma) + math.Exp(-(c-m)/gamma)
	return m - gamma*math.Log(sum)
}
