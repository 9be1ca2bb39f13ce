package team

import "fmt"

// Team is one national side in the tournament. Teams are seeded once by the
// tournament administrator and never change afterwards.
type Team struct {
	ID          int64
	Name        string
	CountryCode string
	Group       string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Group == "" {
		return fmt.Errorf("team group is required")
	}

	return nil
}
