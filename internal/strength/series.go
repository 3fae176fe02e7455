package strength

import (
	"sort"
	"time"
)

// E1RMPoint is one entry of the e1RM time series, derived from a single logged set.
type E1RMPoint struct {
	Date   string   `json:"date"`
	E1RM   int      `json:"e1rm"`
	Weight float64  `json:"weight"`
	Reps   int      `json:"reps"`
	RPE    *float64 `json:"rpe"`
}

// BuildE1RMSeries computes one e1RM point per set, ordered by date ascending.
// Sets sharing a timestamp keep their input order. The e1RM is rounded to the
// nearest integer while the raw RPE is passed through (nil stays nil) even
// though DefaultRPEWhenAbsent was used for the computation.
// Filtering is the caller's job; every input set yields a point.
func BuildE1RMSeries(sets []LoggedSet) []E1RMPoint {
	type datedPoint struct {
		at    time.Time
		point E1RMPoint
	}

	dated := make([]datedPoint, 0, len(sets))
	for _, s := range sets {
		dated = append(dated, datedPoint{
			at: s.PerformedAt,
			point: E1RMPoint{
				Date:   FormatDate(s.PerformedAt),
				E1RM:   RoundE1RM(s.E1RM()),
				Weight: s.Weight,
				Reps:   s.Reps,
				RPE:    copyRPE(s.RPE),
			},
		})
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].at.Before(dated[j].at)
	})

	series := make([]E1RMPoint, len(dated))
	for i := range dated {
		series[i] = dated[i].point
	}
	return series
}
