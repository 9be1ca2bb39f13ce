package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/goalpool/prediction-league/internal/domain/prediction"
	"github.com/goalpool/prediction-league/internal/usecase"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	entries, err := h.leaderboardService.Leaderboard(ctx, 0)
	if err != nil {
		h.logger.ErrorContext(ctx, "get leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(entries))
}

func (h *Handler) GetLeaderboardTop(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboardTop")
	defer span.End()

	limit, err := strconv.Atoi(r.PathValue("limit"))
	if err != nil || limit <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
		return
	}

	entries, err := h.leaderboardService.Leaderboard(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "get leaderboard failed", "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(entries))
}

func (h *Handler) GetMyPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPoints")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	summary, err := h.leaderboardService.PointsFor(ctx, principal.ID)
	if err != nil {
		h.logger.WarnContext(ctx, "get my points failed", "user_id", principal.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pointsSummaryToDTO(summary))
}

// GetMyTeamPredictionPoints reports the current value of one of the caller's
// team predictions without persisting anything. TP2 takes a group query
// parameter; TP1 and TP3 ignore it.
func (h *Handler) GetMyTeamPredictionPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeamPredictionPoints")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	predictionType, err := prediction.ParseType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	points, err := h.scoringService.TeamPredictionPoints(ctx, principal.ID, predictionType, r.URL.Query().Get("group"))
	if err != nil {
		h.logger.WarnContext(ctx, "get team prediction points failed", "user_id", principal.ID, "type", string(predictionType), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"points": points})
}

// GetMyMatchPredictionPoints reports the current value of the caller's
// prediction for one match. No prediction or no result both read as zero.
func (h *Handler) GetMyMatchPredictionPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyMatchPredictionPoints")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	matchID, err := strconv.ParseInt(r.PathValue("matchID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: match id must be an integer", usecase.ErrInvalidInput))
		return
	}

	points, err := h.scoringService.MatchPredictionPoints(ctx, principal.ID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match prediction points failed", "user_id", principal.ID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"points": points})
}
