package strength

import "math"

const (
	// DefaultRPEWhenAbsent is the RPE assumed for a set logged without one:
	// no reps in reserve, i.e. a max effort set.
	DefaultRPEWhenAbsent = 10.0

	// RepCoefficient is the per-rep percentage increment of the Epley style estimator (~1/30).
	RepCoefficient = 0.0333

	maxRPE = 10.0
)

// EstimateOneRepMax returns the RPE adjusted Epley estimate of a one rep max.
// Every point of reps in reserve (10 - rpe) counts as one more rep taken to failure.
// The result is not rounded and the inputs are not validated.
func EstimateOneRepMax(weight float64, reps int, rpe float64) float64 {
	return weight * repFactor(float64(reps), rpe)
}

// WeightForTarget inverts EstimateOneRepMax: the weight that, done for
// target.Reps at target.RPE, yields the given e1rm.
func WeightForTarget(e1rm float64, target Target) float64 {
	return e1rm / repFactor(float64(target.Reps), target.RPE)
}

// EffectiveRPE returns the RPE used by the formula for a possibly absent value.
func EffectiveRPE(rpe *float64) float64 {
	if rpe == nil {
		return DefaultRPEWhenAbsent
	}
	return *rpe
}

// EffectiveReps is the rep count as if the set had been taken to failure.
func EffectiveReps(reps int, rpe float64) float64 {
	return float64(reps) + (maxRPE - rpe)
}

// RoundE1RM rounds an estimate to the whole load units the series reports.
func RoundE1RM(e1rm float64) int {
	return int(math.Round(e1rm))
}

func repFactor(reps, rpe float64) float64 {
	effectiveReps := reps + (maxRPE - rpe)
	return 1 + RepCoefficient*effectiveReps
}
