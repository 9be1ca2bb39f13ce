package postgres

import "time"

// Table models mirror full rows; insert models carry only the columns an
// upsert supplies, matched by db tags.

type teamTableModel struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	CountryCode string `db:"country_code"`
	GroupName   string `db:"group_name"`
}

type matchTableModel struct {
	ID         int64      `db:"id"`
	Team1ID    int64      `db:"team1_id"`
	Team2ID    int64      `db:"team2_id"`
	Round      string     `db:"round"`
	KickoffAt  time.Time  `db:"kickoff_at"`
	Team1Score *int       `db:"team1_score"`
	Team2Score *int       `db:"team2_score"`
	Completed  bool       `db:"completed"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type teamPredictionTableModel struct {
	ID             int64      `db:"id"`
	UserID         string     `db:"user_id"`
	PredictionType string     `db:"prediction_type"`
	GroupName      string     `db:"group_name"`
	WinnerTeamID   int64      `db:"winner_team_id"`
	RunnerUpTeamID int64      `db:"runner_up_team_id"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type teamPredictionInsertModel struct {
	UserID         string `db:"user_id"`
	PredictionType string `db:"prediction_type"`
	GroupName      string `db:"group_name"`
	WinnerTeamID   int64  `db:"winner_team_id"`
	RunnerUpTeamID int64  `db:"runner_up_team_id"`
}

type matchPredictionTableModel struct {
	ID         int64      `db:"id"`
	UserID     string     `db:"user_id"`
	MatchID    int64      `db:"match_id"`
	Team1Score int        `db:"team1_score"`
	Team2Score int        `db:"team2_score"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type matchPredictionInsertModel struct {
	UserID     string `db:"user_id"`
	MatchID    int64  `db:"match_id"`
	Team1Score int    `db:"team1_score"`
	Team2Score int    `db:"team2_score"`
}

type multiplierActivationTableModel struct {
	ID          int64      `db:"id"`
	UserID      string     `db:"user_id"`
	TeamID      int64      `db:"team_id"`
	Kind        string     `db:"kind"`
	ActivatedAt time.Time  `db:"activated_at"`
	CreatedAt   time.Time  `db:"created_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type multiplierActivationInsertModel struct {
	UserID      string    `db:"user_id"`
	TeamID      int64     `db:"team_id"`
	Kind        string    `db:"kind"`
	ActivatedAt time.Time `db:"activated_at"`
}

type userPointsTableModel struct {
	ID           int64      `db:"id"`
	UserID       string     `db:"user_id"`
	TotalPoints  int        `db:"total_points"`
	TP1Points    int        `db:"tp1_points"`
	TP2Points    int        `db:"tp2_points"`
	TP3Points    int        `db:"tp3_points"`
	MatchPoints  int        `db:"match_points"`
	CalculatedAt time.Time  `db:"calculated_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type userPointsInsertModel struct {
	UserID       string    `db:"user_id"`
	TotalPoints  int       `db:"total_points"`
	TP1Points    int       `db:"tp1_points"`
	TP2Points    int       `db:"tp2_points"`
	TP3Points    int       `db:"tp3_points"`
	MatchPoints  int       `db:"match_points"`
	CalculatedAt time.Time `db:"calculated_at"`
}

type userTableModel struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	Email     string     `db:"email"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type userInsertModel struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
}
