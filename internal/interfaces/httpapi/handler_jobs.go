package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goalpool/prediction-league/internal/usecase"
)

// RunRecalculateJob rebuilds every user's points. QStash delivers this
// after a match result lands; operators can also call it directly.
func (h *Handler) RunRecalculateJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalculateJob")
	defer span.End()

	report, err := h.scoringService.RecalculateAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "recalculate job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) RunRecalculateUserJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalculateUserJob")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	if userID == "" {
		writeError(ctx, w, fmt.Errorf("%w: user id is required", usecase.ErrInvalidInput))
		return
	}

	summary, err := h.scoringService.RecalculateUser(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "recalculate user job failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pointsSummaryToDTO(summary))
}
