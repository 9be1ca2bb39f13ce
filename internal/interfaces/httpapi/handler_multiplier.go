package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/goalpool/prediction-league/internal/domain/multiplier"
	"github.com/goalpool/prediction-league/internal/usecase"
)

type activateMultiplierRequest struct {
	TeamID int64  `json:"teamId" validate:"required,gt=0"`
	Kind   string `json:"kind" validate:"required,oneof=double_up re_double_up"`
}

func (h *Handler) ActivateMultiplier(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ActivateMultiplier")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req activateMultiplierRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	kind, err := multiplier.ParseKind(req.Kind)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.multiplierService.Activate(ctx, principal.ID, req.TeamID, kind)
	if err != nil {
		h.logger.WarnContext(ctx, "activate multiplier failed", "user_id", principal.ID, "team_id", req.TeamID, "kind", req.Kind, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, activationToDTO(item))
}

func (h *Handler) ListMyMultipliers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyMultipliers")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	activations, err := h.multiplierService.ListByUser(ctx, principal.ID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my multipliers failed", "user_id", principal.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]activationDTO, 0, len(activations))
	for _, a := range activations {
		items = append(items, activationToDTO(a))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
