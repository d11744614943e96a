package roi

import "math"

const (
	irrMaxIterations = 100
	irrTolerance     = 1e-4
	irrInitialGuess  = 0.1
)

// NPV discounts a cash-flow vector at a fixed per-period rate.
//
// FORMULA: NPV = Σ CF_t / (1 + r)^t, t = 0..n
//
// CF_0 is not discounted, so upfront costs belong at index 0.
func NPV(rate float64, cashFlows []float64) float64 {
	var npv float64
	for t, cf := range cashFlows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// IRR finds the per-period rate at which NPV of the vector is zero using
// Newton-Raphson from a 10% initial guess. The second return value is false
// when the iteration fails to converge or leaves the domain r > -1.
func IRR(cashFlows []float64) (float64, bool) {
	if len(cashFlows) < 2 {
		return 0, false
	}

	rate := irrInitialGuess
	for i := 0; i < irrMaxIterations; i++ {
		var npv, derivative float64
		for t, cf := range cashFlows {
			discount := math.Pow(1+rate, float64(t))
			npv += cf / discount
			derivative -= float64(t) * cf / (discount * (1 + rate))
		}

		if derivative == 0 || math.IsNaN(derivative) {
			return rate, false
		}

		next := rate - npv/derivative
		if next <= -1 || math.IsNaN(next) || math.IsInf(next, 0) {
			return rate, false
		}

		if math.Abs(next-rate) < irrTolerance {
			return next, true
		}
		rate = next
	}

	return rate, false
}
