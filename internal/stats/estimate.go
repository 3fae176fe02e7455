package stats

import (
	"github.com/2beens/krank/internal/logs"
	"github.com/2beens/krank/internal/strength"
)

// Estimate breaks a single set down into its e1RM inputs and result.
type Estimate struct {
	E1RM          float64 `json:"e1rm"`
	E1RMRounded   int     `json:"e1rmRounded"`
	EffectiveRPE  float64 `json:"effectiveRpe"`
	EffectiveReps float64 `json:"effectiveReps"`
}

// EstimateSet validates the set and estimates its one-rep-max.
func EstimateSet(set strength.LoggedSet) (*Estimate, error) {
	if err := logs.ValidateSet(set); err != nil {
		return nil, err
	}
	rpe := strength.EffectiveRPE(set.RPE)
	e1rm := set.E1RM()
	return &Estimate{
		E1RM:          e1rm,
		E1RMRounded:   strength.RoundE1RM(e1rm),
		EffectiveRPE:  rpe,
		EffectiveReps: strength.EffectiveReps(set.Reps, rpe),
	}, nil
}
