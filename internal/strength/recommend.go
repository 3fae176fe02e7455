package strength

import (
	"math"
	"strconv"
	"strings"
)

// DefaultLoadIncrement is the smallest practical plate/dumbbell jump, in load units.
const DefaultLoadIncrement = 5.0

// Fixed targets behind the suggestion1x3 and suggestion1x5 fields of every recommendation.
var (
	SuggestionTarget1x3 = Target{Reps: 3, RPE: 6}
	SuggestionTarget1x5 = Target{Reps: 5, RPE: 6}
)

// Target is a rep count and RPE the lifter wants to hit.
type Target struct {
	Reps int     `json:"reps"`
	RPE  float64 `json:"rpe"`
}

// ParseTarget parses raw query values into a Target. It returns nil, rather than
// an error, when either value is missing, non numeric or not positive: a
// malformed target only drops the target specific part of a recommendation.
func ParseTarget(repsStr, rpeStr string) *Target {
	reps, err := strconv.Atoi(strings.TrimSpace(repsStr))
	if err != nil || reps <= 0 {
		return nil
	}
	rpe, err := strconv.ParseFloat(strings.TrimSpace(rpeStr), 64)
	if err != nil || rpe <= 0 || math.IsNaN(rpe) || math.IsInf(rpe, 0) {
		return nil
	}
	return &Target{Reps: reps, RPE: rpe}
}

// SetRef echoes the anchor set a recommendation was computed from.
type SetRef struct {
	Date   string   `json:"date"`
	Weight float64  `json:"weight"`
	Reps   int      `json:"reps"`
	RPE    *float64 `json:"rpe"`
}

// Recommendation holds training loads derived from the most recent anchor set.
// All fields are nil when there is no anchor history. The target specific
// fields (RecommendedWeight, RecommendedRaw, E1RMUsed) are nil when no valid
// target was given.
type Recommendation struct {
	Suggestion1x3     *float64 `json:"suggestion1x3"`
	Suggestion1x5     *float64 `json:"suggestion1x5"`
	RecommendedWeight *float64 `json:"recommendedWeight"`
	RecommendedRaw    *float64 `json:"recommendedRaw"`
	E1RMUsed          *float64 `json:"e1rmUsed"`
	BasedOn           *SetRef  `json:"basedOn"`
}

// Recommender inverts the e1RM formula into loads, snapping the target
// specific weight to a loadable increment.
type Recommender struct {
	increment float64
}

// NewRecommender returns a Recommender snapping to the given increment.
// A non positive increment falls back to DefaultLoadIncrement.
func NewRecommender(increment float64) *Recommender {
	if increment <= 0 || math.IsNaN(increment) || math.IsInf(increment, 0) {
		increment = DefaultLoadIncrement
	}
	return &Recommender{
		increment: increment,
	}
}

// Increment returns the load increment recommended weights are snapped to.
func (r *Recommender) Increment() float64 {
	return r.increment
}

// Recommend computes loads from the last anchor set; see RecommendLoads.
func (r *Recommender) Recommend(lastAnchor *LoggedSet, target *Target) Recommendation {
	if lastAnchor == nil {
		return Recommendation{}
	}

	e1rm := lastAnchor.E1RM()
	rec := Recommendation{
		Suggestion1x3: ptr(roundTenth(WeightForTarget(e1rm, SuggestionTarget1x3))),
		Suggestion1x5: ptr(roundTenth(WeightForTarget(e1rm, SuggestionTarget1x5))),
		BasedOn: &SetRef{
			Date:   FormatDate(lastAnchor.PerformedAt),
			Weight: lastAnchor.Weight,
			Reps:   lastAnchor.Reps,
			RPE:    copyRPE(lastAnchor.RPE),
		},
	}

	if target != nil && target.Reps > 0 && target.RPE > 0 {
		raw := WeightForTarget(e1rm, *target)
		rec.RecommendedRaw = ptr(raw)
		rec.RecommendedWeight = ptr(snapTo(raw, r.increment))
		rec.E1RMUsed = ptr(roundTenth(e1rm))
	}

	return rec
}

var defaultRecommender = NewRecommender(DefaultLoadIncrement)

// RecommendLoads proposes training weights from the single most recent anchor
// set. The fixed 1x3 and 1x5 @ RPE 6 suggestions are rounded to 0.1, the
// caller specified target is snapped to DefaultLoadIncrement. A nil anchor set
// means insufficient data and yields an all nil Recommendation.
func RecommendLoads(lastAnchor *LoggedSet, target *Target) Recommendation {
	return defaultRecommender.Recommend(lastAnchor, target)
}

// roundTenth rounds to one decimal place.
func roundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}

// snapTo rounds x to the nearest multiple of increment.
func snapTo(x, increment float64) float64 {
	return math.Round(x/increment) * increment
}

func ptr(v float64) *float64 {
	return &v
}
