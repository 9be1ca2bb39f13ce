package httpapi

import (
	"time"

	"github.com/goalpool/prediction-league/internal/domain/match"
	"github.com/goalpool/prediction-league/internal/domain/multiplier"
	"github.com/goalpool/prediction-league/internal/domain/prediction"
	"github.com/goalpool/prediction-league/internal/domain/scoring"
	"github.com/goalpool/prediction-league/internal/domain/team"
	"github.com/goalpool/prediction-league/internal/usecase"
)

type teamDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	Group       string `json:"group"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:          t.ID,
		Name:        t.Name,
		CountryCode: t.CountryCode,
		Group:       t.Group,
	}
}

type matchDTO struct {
	ID         int64  `json:"id"`
	Team1ID    int64  `json:"team1Id"`
	Team2ID    int64  `json:"team2Id"`
	Round      string `json:"round"`
	KickoffAt  string `json:"kickoffAt"`
	Team1Score *int   `json:"team1Score,omitempty"`
	Team2Score *int   `json:"team2Score,omitempty"`
	Completed  bool   `json:"completed"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:         m.ID,
		Team1ID:    m.Team1ID,
		Team2ID:    m.Team2ID,
		Round:      string(m.Round),
		KickoffAt:  m.KickoffAt.UTC().Format(time.RFC3339),
		Team1Score: m.Team1Score,
		Team2Score: m.Team2Score,
		Completed:  m.Completed,
	}
}

type teamPredictionDTO struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	GroupName  string `json:"groupName,omitempty"`
	WinnerID   int64  `json:"winnerId"`
	RunnerUpID int64  `json:"runnerUpId"`
	UpdatedAt  string `json:"updatedAt"`
}

func teamPredictionToDTO(p prediction.TeamPrediction) teamPredictionDTO {
	return teamPredictionDTO{
		ID:         p.ID,
		Type:       string(p.Type),
		GroupName:  p.GroupName,
		WinnerID:   p.WinnerID,
		RunnerUpID: p.RunnerUpID,
		UpdatedAt:  p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type matchPredictionDTO struct {
	ID         int64  `json:"id"`
	MatchID    int64  `json:"matchId"`
	Team1Score int    `json:"team1Score"`
	Team2Score int    `json:"team2Score"`
	UpdatedAt  string `json:"updatedAt"`
}

func matchPredictionToDTO(p prediction.MatchPrediction) matchPredictionDTO {
	return matchPredictionDTO{
		ID:         p.ID,
		MatchID:    p.MatchID,
		Team1Score: p.Team1Score,
		Team2Score: p.Team2Score,
		UpdatedAt:  p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type userPredictionsDTO struct {
	TeamPredictions  []teamPredictionDTO  `json:"teamPredictions"`
	MatchPredictions []matchPredictionDTO `json:"matchPredictions"`
}

func userPredictionsToDTO(p usecase.UserPredictions) userPredictionsDTO {
	teamItems := make([]teamPredictionDTO, 0, len(p.TeamPredictions))
	for _, tp := range p.TeamPredictions {
		teamItems = append(teamItems, teamPredictionToDTO(tp))
	}
	matchItems := make([]matchPredictionDTO, 0, len(p.MatchPredictions))
	for _, mp := range p.MatchPredictions {
		matchItems = append(matchItems, matchPredictionToDTO(mp))
	}
	return userPredictionsDTO{
		TeamPredictions:  teamItems,
		MatchPredictions: matchItems,
	}
}

type activationDTO struct {
	ID          int64  `json:"id"`
	TeamID      int64  `json:"teamId"`
	Kind        string `json:"kind"`
	ActivatedAt string `json:"activatedAt"`
}

func activationToDTO(a multiplier.Activation) activationDTO {
	return activationDTO{
		ID:          a.ID,
		TeamID:      a.TeamID,
		Kind:        string(a.Kind),
		ActivatedAt: a.ActivatedAt.UTC().Format(time.RFC3339),
	}
}

type pointsSummaryDTO struct {
	UserID       string `json:"userId"`
	Total        int    `json:"total"`
	TP1          int    `json:"tp1"`
	TP2          int    `json:"tp2"`
	TP3          int    `json:"tp3"`
	Match        int    `json:"match"`
	CalculatedAt string `json:"calculatedAt,omitempty"`
}

func pointsSummaryToDTO(s scoring.PointsSummary) pointsSummaryDTO {
	dto := pointsSummaryDTO{
		UserID: s.UserID,
		Total:  s.Total,
		TP1:    s.TP1,
		TP2:    s.TP2,
		TP3:    s.TP3,
		Match:  s.Match,
	}
	if !s.CalculatedAt.IsZero() {
		dto.CalculatedAt = s.CalculatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

type leaderboardEntryDTO struct {
	Rank    int              `json:"rank"`
	UserID  string           `json:"userId"`
	Summary pointsSummaryDTO `json:"summary"`
}

func leaderboardToDTO(entries []usecase.LeaderboardEntry) []leaderboardEntryDTO {
	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, leaderboardEntryDTO{
			Rank:    e.Rank,
			UserID:  e.UserID,
			Summary: pointsSummaryToDTO(e.Summary),
		})
	}
	return items
}
