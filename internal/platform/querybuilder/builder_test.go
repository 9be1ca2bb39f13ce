package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectWithConditionsAndOrder(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id", "round").
		From("matches").
		Where(Eq("round", "qualifying"), IsNull("deleted_at"), Expr("kickoff_at >= ?", "2026-06-12")).
		OrderBy("kickoff_at ASC", "id ASC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT id, round FROM matches WHERE round = $1 AND deleted_at IS NULL AND kickoff_at >= $2 ORDER BY kickoff_at ASC, id ASC LIMIT 10"
	if sql != want {
		t.Fatalf("sql mismatch:\n got %s\nwant %s", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"qualifying", "2026-06-12"}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestInsertAppendsConflictSuffix(t *testing.T) {
	t.Parallel()

	sql, args, err := InsertInto("user_points").
		Columns("user_id", "total_points").
		Values("u1", 500).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET total_points = EXCLUDED.total_points").
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "INSERT INTO user_points (user_id, total_points) VALUES ($1, $2) ON CONFLICT (user_id) DO UPDATE SET total_points = EXCLUDED.total_points"
	if sql != want {
		t.Fatalf("sql mismatch:\n got %s\nwant %s", sql, want)
	}
	if len(args) != 2 {
		t.Fatalf("args: got %d, want 2", len(args))
	}
}

func TestUpdateBuildsSetAndWhere(t *testing.T) {
	t.Parallel()

	sql, args, err := Update("matches").
		Set("team1_score", 2).
		Set("team2_score", 1).
		Set("completed", true).
		Where(Eq("id", int64(7)), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "UPDATE matches SET team1_score = $1, team2_score = $2, completed = $3 WHERE id = $4 AND deleted_at IS NULL"
	if sql != want {
		t.Fatalf("sql mismatch:\n got %s\nwant %s", sql, want)
	}
	if len(args) != 4 {
		t.Fatalf("args: got %d, want 4", len(args))
	}
}

func TestInsertModelUsesDBTags(t *testing.T) {
	t.Parallel()

	type row struct {
		UserID string `db:"user_id"`
		Total  int    `db:"total_points"`
		Skip   string `db:"-"`
		None   string
	}

	sql, args, err := InsertModel("user_points", row{UserID: "u1", Total: 42}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "INSERT INTO user_points (user_id, total_points) VALUES ($1, $2)"
	if sql != want {
		t.Fatalf("sql mismatch:\n got %s\nwant %s", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"u1", 42}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestBuilderValidation(t *testing.T) {
	t.Parallel()

	if _, _, err := Select().From("teams").ToSQL(); err == nil {
		t.Fatal("expected error for missing columns")
	}
	if _, _, err := InsertInto("").Columns("a").Values(1).ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
	if _, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatal("expected error for value count mismatch")
	}
	if _, _, err := Update("t").ToSQL(); err == nil {
		t.Fatal("expected error for empty set list")
	}
}
