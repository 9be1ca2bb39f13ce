package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/goalpool/prediction-league/internal/domain/prediction"
	"github.com/goalpool/prediction-league/internal/usecase"
)

type teamPredictionRequest struct {
	Type       string `json:"type" validate:"required,oneof=tp1 tp2 tp3"`
	GroupName  string `json:"groupName" validate:"omitempty,len=1"`
	WinnerID   int64  `json:"winnerId" validate:"required,gt=0"`
	RunnerUpID int64  `json:"runnerUpId" validate:"required,gt=0"`
}

func (h *Handler) SubmitTeamPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitTeamPrediction")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req teamPredictionRequest
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

	predictionType, err := prediction.ParseType(req.Type)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.predictionService.SubmitTeamPrediction(ctx, usecase.TeamPredictionInput{
		UserID:     principal.ID,
		Type:       predictionType,
		GroupName:  req.GroupName,
		WinnerID:   req.WinnerID,
		RunnerUpID: req.RunnerUpID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit team prediction failed", "user_id", principal.ID, "type", req.Type, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamPredictionToDTO(item))
}

type matchPredictionRequest struct {
	MatchID    int64 `json:"matchId" validate:"required,gt=0"`
	Team1Score *int  `json:"team1Score" validate:"required,min=0"`
	Team2Score *int  `json:"team2Score" validate:"required,min=0"`
}

func (h *Handler) SubmitMatchPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitMatchPrediction")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req matchPredictionRequest
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

	item, err := h.predictionService.SubmitMatchPrediction(ctx, usecase.MatchPredictionInput{
		UserID:     principal.ID,
		MatchID:    req.MatchID,
		Team1Score: *req.Team1Score,
		Team2Score: *req.Team2Score,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit match prediction failed", "user_id", principal.ID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchPredictionToDTO(item))
}

func (h *Handler) ListMyPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPredictions")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	predictions, err := h.predictionService.ListByUser(ctx, principal.ID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my predictions failed", "user_id", principal.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userPredictionsToDTO(predictions))
}
