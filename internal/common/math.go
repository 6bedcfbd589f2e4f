package common

import "math"

// SplitMix64 is the SplitMix64 finalizer: a bijective mix of x with good avalanche.
func SplitMix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// DeriveSeed mixes a base seed with a sequence of stream identifiers so that
// every distinct (base, ids...) tuple gets an independent-looking seed.
func DeriveSeed(base uint64, ids ...uint64) uint64 {
	s := SplitMix64(base)
	for _, id := range ids {
		s = SplitMix64(s ^ id)
	}
	return s
}

// MeanVariance returns the mean and population variance of n samples from their
// sum and sum of squares. Rounding can push the variance slightly below zero; it
// is clamped to 0.
func MeanVariance(sum, sumSq float64, n int) (mean, variance float64) {
	if n <= 0 {
		return math.NaN(), math.NaN()
	}
	mean = sum / float64(n)
	variance = sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, variance
}

// HalfWidth95 returns the half-width of a normal 95% confidence interval for a
// mean estimated from n samples with the given variance.
func HalfWidth95(variance float64, n int) float64 {
	if n <= 0 {
		return math.Inf(1)
	}
	return 1.96 * math.Sqrt(variance/float64(n))
}
