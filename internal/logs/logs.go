package logs

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/2beens/krank/internal/strength"
)

var ErrInvalidSet = errors.New("invalid set")

// ListParams narrows the logged sets of one user. Zero values mean "any".
type ListParams struct {
	UserID         string
	MovementFamily strength.MovementFamily
	IsAnchor       *bool
	Variant        string
	From           *time.Time
	To             *time.Time
}

// ValidateSet rejects sets the estimation formula is not meant to see:
// negative or non-finite weight, negative reps, and an RPE outside [0, 10].
func ValidateSet(s strength.LoggedSet) error {
	if math.IsNaN(s.Weight) || math.IsInf(s.Weight, 0) || s.Weight < 0 {
		return fmt.Errorf("%w: weight %v", ErrInvalidSet, s.Weight)
	}
	if s.Reps < 0 {
		return fmt.Errorf("%w: reps %d", ErrInvalidSet, s.Reps)
	}
	if s.RPE != nil {
		rpe := *s.RPE
		if math.IsNaN(rpe) || rpe < 0 || rpe > 10 {
			return fmt.Errorf("%w: rpe %v", ErrInvalidSet, rpe)
		}
	}
	return nil
}
