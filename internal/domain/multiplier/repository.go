package multiplier

import (
	"context"
	"errors"
)

// ErrAlreadyActive is returned by Activate when the (user, team, kind)
// activation already exists.
var ErrAlreadyActive = errors.New("multiplier already active")

type Repository interface {
	ListActiveByUser(ctx context.Context, userID string) ([]Activation, error)

	// Activate stores the activation. At most one activation per
	// (user, team, kind) may exist; a second attempt is a conflict.
	Activate(ctx context.Context, a Activation) (Activation, error)
}
