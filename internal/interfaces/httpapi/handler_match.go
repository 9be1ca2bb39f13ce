package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"

	"github.com/goalpool/prediction-league/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	filter := usecase.MatchFilter{
		Round:        r.URL.Query().Get("round"),
		UpcomingOnly: r.URL.Query().Get("upcoming") == "true",
	}

	matches, err := h.matchService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "round", filter.Round, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetCurrentMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentMatch")
	defer span.End()

	item, err := h.matchService.Current(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := strconv.ParseInt(r.PathValue("matchID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: match id must be an integer", usecase.ErrInvalidInput))
		return
	}

	item, err := h.matchService.GetByID(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

// ListMatchPredictions stays closed until the result is in so nobody can
// copy another player's pick while the outcome is still undecided.
func (h *Handler) ListMatchPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchPredictions")
	defer span.End()

	matchID, err := strconv.ParseInt(r.PathValue("matchID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: match id must be an integer", usecase.ErrInvalidInput))
		return
	}

	predictions, err := h.predictionService.ListByMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match predictions failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchPredictionDTO, 0, len(predictions))
	for _, p := range predictions {
		items = append(items, matchPredictionToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type recordResultRequest struct {
	Team1Score *int `json:"team1Score" validate:"required,min=0"`
	Team2Score *int `json:"team2Score" validate:"required,min=0"`
}

func (h *Handler) RecordMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchResult")
	defer span.End()

	matchID, err := strconv.ParseInt(r.PathValue("matchID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: match id must be an integer", usecase.ErrInvalidInput))
		return
	}

	var req recordResultRequest
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

	item, err := h.matchService.RecordResult(ctx, matchID, *req.Team1Score, *req.Team2Score)
	if err != nil {
		h.logger.WarnContext(ctx, "record match result failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}
