package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/goalpool/prediction-league/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	group := r.URL.Query().Get("group")
	teams, err := h.teamService.List(ctx, group)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "group", group, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := strconv.ParseInt(r.PathValue("teamID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: team id must be an integer", usecase.ErrInvalidInput))
		return
	}

	item, err := h.teamService.GetByID(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}
