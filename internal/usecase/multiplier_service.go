package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goalpool/prediction-league/internal/domain/multiplier"
	"github.com/goalpool/prediction-league/internal/domain/team"
	"github.com/goalpool/prediction-league/internal/platform/logging"
)

// MultiplierService activates point multipliers. A successful activation
// immediately recalculates the user so their visible total reflects the new
// factor without waiting for the next global run.
type MultiplierService struct {
	eligibility    *EligibilityService
	teamRepo       team.Repository
	multiplierRepo multiplier.Repository
	scoring        *ScoringService
	logger         *logging.Logger
	now            func() time.Time
}

func NewMultiplierService(
	eligibility *EligibilityService,
	teamRepo team.Repository,
	multiplierRepo multiplier.Repository,
	scoringService *ScoringService,
	logger *logging.Logger,
) *MultiplierService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MultiplierService{
		eligibility:    eligibility,
		teamRepo:       teamRepo,
		multiplierRepo: multiplierRepo,
		scoring:        scoringService,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *MultiplierService) Activate(ctx context.Context, userID string, teamID int64, kind multiplier.Kind) (multiplier.Activation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MultiplierService.Activate")
	defer span.End()

	activation := multiplier.Activation{
		UserID:      userID,
		TeamID:      teamID,
		Kind:        kind,
		ActivatedAt: s.now().UTC(),
	}
	if err := activation.Validate(); err != nil {
		return multiplier.Activation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, ok, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return multiplier.Activation{}, fmt.Errorf("get team: %w", err)
	} else if !ok {
		return multiplier.Activation{}, fmt.Errorf("%w: team %d", ErrNotFound, teamID)
	}

	if err := s.eligibility.CheckMultiplier(ctx, teamID, kind); err != nil {
		return multiplier.Activation{}, err
	}

	stored, err := s.multiplierRepo.Activate(ctx, activation)
	if err != nil {
		if errors.Is(err, multiplier.ErrAlreadyActive) {
			return multiplier.Activation{}, ErrAlreadyActivated
		}
		return multiplier.Activation{}, fmt.Errorf("activate multiplier: %w", err)
	}

	// The activation stands even if the refresh fails; the next
	// recalculation picks the factor up.
	if _, err := s.scoring.RecalculateUser(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "post-activation recalculation failed",
			"user_id", userID,
			"team_id", teamID,
			"kind", string(kind),
			"error", err,
		)
	}
	return stored, nil
}

func (s *MultiplierService) ListByUser(ctx context.Context, userID string) ([]multiplier.Activation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MultiplierService.ListByUser")
	defer span.End()

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	activations, err := s.multiplierRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list multiplier activations: %w", err)
	}
	return activations, nil
}
