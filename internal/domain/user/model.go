package user

import "context"

// Principal is the authenticated caller as resolved from the bearer token.
type Principal struct {
	ID    string
	Name  string
	Email string
}

// Repository exposes the known user population. Recalculating everyone
// needs the full id list; predictions alone miss users who never submitted.
// Ensure registers a principal on first sight so the population grows as
// users authenticate.
type Repository interface {
	ListIDs(ctx context.Context) ([]string, error)
	Ensure(ctx context.Context, p Principal) error
}
