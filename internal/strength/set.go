package strength

import "time"

// isoLayout matches the ISO-8601 form browsers produce (millisecond precision, UTC).
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// LoggedSet is one actual execution of a set. IsAnchor and MovementFamily
// are inherited from the prescription row the set was logged against.
type LoggedSet struct {
	ID             int            `json:"id"`
	Weight         float64        `json:"weight"`
	Reps           int            `json:"reps"`
	RPE            *float64       `json:"rpe"`
	PerformedAt    time.Time      `json:"performedAt"`
	MovementFamily MovementFamily `json:"movementFamily"`
	IsAnchor       bool           `json:"isAnchor"`
	Variant        string         `json:"variant,omitempty"`
}

// E1RM returns the unrounded estimate for the set, defaulting an absent RPE.
func (s LoggedSet) E1RM() float64 {
	return EstimateOneRepMax(s.Weight, s.Reps, EffectiveRPE(s.RPE))
}

// FormatDate renders a timestamp the way the series and provenance fields carry it.
// A zero time renders as an empty string.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(isoLayout)
}

func copyRPE(rpe *float64) *float64 {
	if rpe == nil {
		return nil
	}
	v := *rpe
	return &v
}
