package httpapi

import (
	"net/http"

	"github.com/goalpool/prediction-league/internal/platform/logging"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/current", handler.GetCurrentMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/predictions", handler.ListMatchPredictions)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/leaderboard/top/{limit}", handler.GetLeaderboardTop)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, registrar PrincipalRegistrar, logger *logging.Logger) {
	authed := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, registrar, logger, h)
	}

	mux.Handle("POST /v1/predictions/team", authed(handler.SubmitTeamPrediction))
	mux.Handle("POST /v1/predictions/match", authed(handler.SubmitMatchPrediction))
	mux.Handle("GET /v1/predictions/me", authed(handler.ListMyPredictions))
	mux.Handle("POST /v1/multipliers", authed(handler.ActivateMultiplier))
	mux.Handle("GET /v1/multipliers/me", authed(handler.ListMyMultipliers))
	mux.Handle("GET /v1/points/me", authed(handler.GetMyPoints))
	mux.Handle("GET /v1/points/me/team", authed(handler.GetMyTeamPredictionPoints))
	mux.Handle("GET /v1/points/me/matches/{matchID}", authed(handler.GetMyMatchPredictionPoints))
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	internal := func(h http.HandlerFunc) http.Handler {
		return RequireInternalJobToken(internalJobToken, h)
	}

	mux.Handle("POST /v1/internal/matches/{matchID}/result", internal(handler.RecordMatchResult))
	mux.Handle("POST /v1/internal/jobs/recalculate", internal(handler.RunRecalculateJob))
	mux.Handle("POST /v1/internal/jobs/recalculate/{userID}", internal(handler.RunRecalculateUserJob))
}
