// Package standings derives group tables and per-team records from completed
// matches. Everything here is pure: callers supply matches, no storage.
package standings

import (
	"sort"

	"github.com/goalpool/prediction-league/internal/domain/match"
)

// Row is one team's line in a group table.
type Row struct {
	TeamID   int64
	Played   int
	Points   int
	GoalDiff int
}

// Compute builds the group table for the given team ids from completed
// matches. Wins earn 3 points, draws 1, losses 0. Ordering is points
// descending, then goal difference descending, then team id ascending so
// the table is deterministic.
func Compute(teamIDs []int64, matches []match.Match) []Row {
	rows := make(map[int64]*Row, len(teamIDs))
	for _, id := range teamIDs {
		rows[id] = &Row{TeamID: id}
	}
	for _, m := range matches {
		if !m.HasResult() {
			continue
		}
		apply(rows, m.Team1ID, *m.Team1Score, *m.Team2Score)
		apply(rows, m.Team2ID, *m.Team2Score, *m.Team1Score)
	}
	table := make([]Row, 0, len(rows))
	for _, row := range rows {
		table = append(table, *row)
	}
	sort.Slice(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		if table[i].GoalDiff != table[j].GoalDiff {
			return table[i].GoalDiff > table[j].GoalDiff
		}
		return table[i].TeamID < table[j].TeamID
	})
	return table
}

func apply(rows map[int64]*Row, teamID int64, scored, conceded int) {
	row, ok := rows[teamID]
	if !ok {
		return
	}
	row.Played++
	row.GoalDiff += scored - conceded
	switch {
	case scored > conceded:
		row.Points += 3
	case scored == conceded:
		row.Points++
	}
}

// TopTwo returns the first and second placed team ids of a computed table.
// ok is false when the table holds fewer than two rows.
func TopTwo(table []Row) (first, second int64, ok bool) {
	if len(table) < 2 {
		return 0, 0, false
	}
	return table[0].TeamID, table[1].TeamID, true
}

// FinalOutcome reports the winner and runner-up of the tournament final.
// When several completed finals exist (a replay or an annulled fixture kept
// around), the one with the latest kickoff decides. ok is false until a
// final has a result; a drawn deciding final also reports false since no
// winner can be derived from it.
func FinalOutcome(matches []match.Match) (winnerID, runnerUpID int64, ok bool) {
	var final match.Match
	found := false
	for _, m := range matches {
		if m.Round != match.RoundFinal || !m.HasResult() {
			continue
		}
		if !found || m.KickoffAt.After(final.KickoffAt) {
			final = m
			found = true
		}
	}
	if !found {
		return 0, 0, false
	}

	switch outcome, _ := final.Outcome(); outcome {
	case match.OutcomeTeam1:
		return final.Team1ID, final.Team2ID, true
	case match.OutcomeTeam2:
		return final.Team2ID, final.Team1ID, true
	}
	return 0, 0, false
}

// TeamQualifyingRecord summarizes a team's completed qualifying matches,
// used to gate double_up activation.
type TeamQualifyingRecord struct {
	TeamID    int64
	Completed int
	Points    int
}

// QualifyingRecord tallies the team's completed qualifying-round matches.
func QualifyingRecord(teamID int64, matches []match.Match) TeamQualifyingRecord {
	record := TeamQualifyingRecord{TeamID: teamID}
	for _, m := range matches {
		if m.Round != match.RoundQualifying || !m.HasResult() || !m.Involves(teamID) {
			continue
		}
		record.Completed++
		scored, conceded := *m.Team1Score, *m.Team2Score
		if m.Team2ID == teamID {
			scored, conceded = conceded, scored
		}
		switch {
		case scored > conceded:
			record.Points += 3
		case scored == conceded:
			record.Points++
		}
	}
	return record
}
