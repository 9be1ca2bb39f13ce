package scoring

import "time"

// PointsSummary is a user's persisted score breakdown. Recalculation always
// rewrites the whole row, so the stored totals never drift from the parts.
type PointsSummary struct {
	UserID       string
	Total        int
	TP1          int
	TP2          int
	TP3          int
	Match        int
	CalculatedAt time.Time
}
