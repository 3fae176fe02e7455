package strength

import (
	"fmt"
	"strings"
)

// MovementFamily is a coarse classification of an exercise, used to group
// historical sets for trend and recommendation purposes.
type MovementFamily string

const (
	Bench        MovementFamily = "Bench"
	Deadlift     MovementFamily = "Deadlift"
	Squat        MovementFamily = "Squat"
	Row          MovementFamily = "Row"
	Carry        MovementFamily = "Carry"
	Conditioning MovementFamily = "Conditioning"
	Accessory    MovementFamily = "Accessory"
)

var movementFamilies = []MovementFamily{
	Bench, Deadlift, Squat, Row, Carry, Conditioning, Accessory,
}

// AllMovementFamilies returns the closed set of movement families, in their canonical order.
func AllMovementFamilies() []MovementFamily {
	families := make([]MovementFamily, len(movementFamilies))
	copy(families, movementFamilies)
	return families
}

// ParseMovementFamily accepts the canonical name in any letter case.
func ParseMovementFamily(s string) (MovementFamily, error) {
	s = strings.TrimSpace(s)
	for _, f := range movementFamilies {
		if strings.EqualFold(string(f), s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown movement family: %q", s)
}

func (f MovementFamily) String() string {
	return string(f)
}
