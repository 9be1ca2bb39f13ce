package memory

import (
	"time"

	"github.com/goalpool/prediction-league/internal/domain/match"
	"github.com/goalpool/prediction-league/internal/domain/team"
)

// SeedTeams returns the 48 tournament teams, 8 groups of 6, ids assigned
// in group order.
func SeedTeams() []team.Team {
	names := [][6]string{
		{"Brazil", "Germany", "Morocco", "Japan", "Ecuador", "New Zealand"},
		{"Argentina", "Netherlands", "Senegal", "South Korea", "Canada", "Panama"},
		{"France", "Croatia", "Nigeria", "Australia", "Peru", "Jordan"},
		{"England", "Spain", "Egypt", "Iran", "Chile", "Honduras"},
		{"Portugal", "Belgium", "Ghana", "Saudi Arabia", "Paraguay", "Uzbekistan"},
		{"Italy", "Switzerland", "Cameroon", "Qatar", "Venezuela", "Haiti"},
		{"Uruguay", "Denmark", "Algeria", "Iraq", "Jamaica", "Georgia"},
		{"Colombia", "Poland", "Tunisia", "China", "Costa Rica", "Albania"},
	}
	codes := [][6]string{
		{"BRA", "GER", "MAR", "JPN", "ECU", "NZL"},
		{"ARG", "NED", "SEN", "KOR", "CAN", "PAN"},
		{"FRA", "CRO", "NGA", "AUS", "PER", "JOR"},
		{"ENG", "ESP", "EGY", "IRN", "CHI", "HON"},
		{"POR", "BEL", "GHA", "KSA", "PAR", "UZB"},
		{"ITA", "SUI", "CMR", "QAT", "VEN", "HAI"},
		{"URU", "DEN", "ALG", "IRQ", "JAM", "GEO"},
		{"COL", "POL", "TUN", "CHN", "CRC", "ALB"},
	}

	teams := make([]team.Team, 0, 48)
	id := int64(1)
	for g := 0; g < 8; g++ {
		group := string(rune('A' + g))
		for i := 0; i < 6; i++ {
			teams = append(teams, team.Team{
				ID:          id,
				Name:        names[g][i],
				CountryCode: codes[g][i],
				Group:       group,
			})
			id++
		}
	}
	return teams
}

// SeedMatches returns a qualifying schedule: each group plays a single
// round-robin of 15 matches starting at the tournament opening kickoff.
func SeedMatches(teams []team.Team) []match.Match {
	byGroup := make(map[string][]team.Team)
	for _, t := range teams {
		byGroup[t.Group] = append(byGroup[t.Group], t)
	}

	opening := time.Date(2026, 6, 11, 18, 0, 0, 0, time.UTC)
	matches := make([]match.Match, 0, 8*15)
	id := int64(1)
	slot := 0
	for g := 0; g < 8; g++ {
		group := byGroup[string(rune('A'+g))]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				matches = append(matches, match.Match{
					ID:        id,
					Team1ID:   group[i].ID,
					Team2ID:   group[j].ID,
					Round:     match.RoundQualifying,
					KickoffAt: opening.Add(time.Duration(slot) * 3 * time.Hour),
				})
				id++
				slot++
			}
		}
	}
	return matches
}
