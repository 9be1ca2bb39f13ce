package multiplier

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the multiplier activation type. Each active activation doubles
// the points earned from the chosen team, and kinds stack multiplicatively.
type Kind string

const (
	KindDoubleUp   Kind = "double_up"
	KindReDoubleUp Kind = "re_double_up"
)

func ParseKind(value string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(value)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown multiplier kind %q", value)
	}
	return k, nil
}

func (k Kind) Valid() bool {
	switch k {
	case KindDoubleUp, KindReDoubleUp:
		return true
	default:
		return false
	}
}

// Activation binds one multiplier kind to one team for one user. A user may
// hold activations on several teams at once; uniqueness is per
// (user, team, kind).
type Activation struct {
	ID          int64
	UserID      string
	TeamID      int64
	Kind        Kind
	ActivatedAt time.Time
}

func (a Activation) Validate() error {
	if a.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if a.TeamID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if !a.Kind.Valid() {
		return fmt.Errorf("unknown multiplier kind %q", a.Kind)
	}
	return nil
}

// FactorFor returns the combined multiplier for a team given the user's
// active activations. Base is 1; each activation on the team doubles it.
func FactorFor(teamID int64, activations []Activation) int {
	factor := 1
	for _, a := range activations {
		if a.TeamID == teamID {
			factor *= 2
		}
	}
	return factor
}
