package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Eligibility denials. Handlers map these to 403 with distinct reasons
	// so clients can tell a closed window from a missing prerequisite.
	ErrDeadlinePassed      = errors.New("deadline passed")
	ErrPrerequisiteMissing = errors.New("prerequisite missing")
	ErrNotYetOpen          = errors.New("window not yet open")
	ErrNotYetEligible      = errors.New("not yet eligible")
	ErrDoesNotQualify      = errors.New("does not qualify")
	ErrAlreadyActivated    = errors.New("already activated")
)
