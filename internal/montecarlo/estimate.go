package montecarlo

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/mitchelldurbincs/obelisk/internal/common"
	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

// Estimate is the sample mean and population variance of the loss over Samples trials.
type Estimate struct {
	Mean     float64
	Variance float64
	Samples  int
}

// HalfWidth returns the half-width of the 95% confidence interval of the mean.
func (e Estimate) HalfWidth() float64 {
	return common.HalfWidth95(e.Variance, e.Samples)
}

func (e Estimate) String() string {
	return fmt.Sprintf("%.3f±%.3f", e.Mean, e.HalfWidth())
}

// Candidate is one action of the target and its estimated loss. A candidate that
// was not simulated has Mean +Inf and no samples.
type Candidate struct {
	Action core.Action
	Estimate
}

// Ranked returns a copy of candidates sorted by ascending mean. Equal means keep
// their enumeration order and NaN means come last.
func Ranked(candidates []Candidate) []Candidate {
	out := slices.Clone(candidates)
	slices.SortStableFunc(out, func(a, b Candidate) int {
		an, bn := math.IsNaN(a.Mean), math.IsNaN(b.Mean)
		switch {
		case an && bn:
			return 0
		case an:
			return 1
		case bn:
			return -1
		}
		return cmp.Compare(a.Mean, b.Mean)
	})
	return out
}

// partial is what one trial worker accumulated.
type partial struct {
	worker int
	sum    float64
	sumSq  float64
	n      int
}
