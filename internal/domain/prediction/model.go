package prediction

import (
	"fmt"
	"strings"
	"time"

	"github.com/goalpool/prediction-league/internal/domain/match"
)

// Type distinguishes the three team prediction kinds.
type Type string

const (
	// TypeTP1 is the pre-tournament pick of overall winner and runner-up.
	TypeTP1 Type = "tp1"
	// TypeTP2 is the per-group pick of that group's winner and runner-up.
	TypeTP2 Type = "tp2"
	// TypeTP3 is the post-qualifying revised overall pick.
	TypeTP3 Type = "tp3"
)

func ParseType(value string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(value)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown prediction type %q", value)
	}
	return t, nil
}

func (t Type) Valid() bool {
	switch t {
	case TypeTP1, TypeTP2, TypeTP3:
		return true
	default:
		return false
	}
}

// TeamPrediction is a user's winner/runner-up pick for one prediction type.
// GroupName is set for TP2 only; TP1 and TP3 are tournament-wide and store
// it empty. Uniqueness is per (user, type, group).
type TeamPrediction struct {
	ID         int64
	UserID     string
	Type       Type
	GroupName  string
	WinnerID   int64
	RunnerUpID int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p TeamPrediction) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if !p.Type.Valid() {
		return fmt.Errorf("unknown prediction type %q", p.Type)
	}
	if p.WinnerID <= 0 || p.RunnerUpID <= 0 {
		return fmt.Errorf("winner and runner-up teams are required")
	}
	if p.WinnerID == p.RunnerUpID {
		return fmt.Errorf("winner and runner-up must differ")
	}
	if p.Type == TypeTP2 && p.GroupName == "" {
		return fmt.Errorf("group name is required for tp2")
	}
	if p.Type != TypeTP2 && p.GroupName != "" {
		return fmt.Errorf("%s is not scoped to a group", p.Type)
	}
	return nil
}

// MatchPrediction is a user's exact-score pick for one match. The predicted
// outcome is derived from the scores, never stored independently.
type MatchPrediction struct {
	ID         int64
	UserID     string
	MatchID    int64
	Team1Score int
	Team2Score int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Outcome derives the predicted result from the predicted scores.
func (p MatchPrediction) Outcome() match.Outcome {
	return match.OutcomeOf(p.Team1Score, p.Team2Score)
}

func (p MatchPrediction) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if p.MatchID <= 0 {
		return fmt.Errorf("match id is required")
	}
	if p.Team1Score < 0 || p.Team2Score < 0 {
		return fmt.Errorf("scores must be non-negative")
	}
	return nil
}
