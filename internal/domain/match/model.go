package match

import (
	"fmt"
	"strings"
	"time"
)

// Round is the tournament stage a match belongs to. Closed set: scoring
// rules switch over it and unknown values are rejected at the boundary.
type Round string

const (
	RoundQualifying    Round = "qualifying"
	RoundOf16          Round = "round_of_16"
	RoundQuarterfinals Round = "quarterfinals"
	RoundSemifinals    Round = "semifinals"
	RoundFinal         Round = "final"
)

func ParseRound(value string) (Round, error) {
	round := Round(strings.ToLower(strings.TrimSpace(value)))
	if !round.Valid() {
		return "", fmt.Errorf("unknown round %q", value)
	}
	return round, nil
}

func (r Round) Valid() bool {
	switch r {
	case RoundQualifying, RoundOf16, RoundQuarterfinals, RoundSemifinals, RoundFinal:
		return true
	default:
		return false
	}
}

// Outcome is the result of a match from team1's perspective.
type Outcome string

const (
	OutcomeTeam1 Outcome = "team1"
	OutcomeTeam2 Outcome = "team2"
	OutcomeDraw  Outcome = "draw"
)

// OutcomeOf derives the outcome from a pair of scores.
func OutcomeOf(team1Score, team2Score int) Outcome {
	switch {
	case team1Score > team2Score:
		return OutcomeTeam1
	case team2Score > team1Score:
		return OutcomeTeam2
	default:
		return OutcomeDraw
	}
}

// Match is one fixture between two teams. Scores are present if and only if
// the match is completed; results may be corrected later, which re-triggers
// recalculation downstream.
type Match struct {
	ID         int64
	Team1ID    int64
	Team2ID    int64
	Round      Round
	KickoffAt  time.Time
	Team1Score *int
	Team2Score *int
	Completed  bool
}

// HasResult reports whether the match carries a usable final score.
func (m Match) HasResult() bool {
	return m.Completed && m.Team1Score != nil && m.Team2Score != nil
}

// Outcome returns the actual outcome; ok is false for unfinished matches.
func (m Match) Outcome() (Outcome, bool) {
	if !m.HasResult() {
		return "", false
	}
	return OutcomeOf(*m.Team1Score, *m.Team2Score), true
}

// Involves reports whether the team played in this match.
func (m Match) Involves(teamID int64) bool {
	return m.Team1ID == teamID || m.Team2ID == teamID
}
