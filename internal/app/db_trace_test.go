package app

import (
	"strings"
	"testing"
)

func TestFormatDBQueryForTrace(t *testing.T) {
	got := formatDBQueryForTrace(" SELECT   *\nFROM matches \t WHERE round = $1 ")
	want := "SELECT * FROM matches WHERE round = $1"
	if got != want {
		t.Fatalf("formatDBQueryForTrace() = %q, want %q", got, want)
	}

	long := strings.Repeat("SELECT user_id, total_points FROM user_points ", 32)
	truncated := formatDBQueryForTrace(long)
	if len(truncated) != maxTracedQueryLength+3 {
		t.Fatalf("truncated length = %d, want %d", len(truncated), maxTracedQueryLength+3)
	}
	if !strings.HasSuffix(truncated, "...") {
		t.Fatalf("truncated query missing ellipsis suffix: %q", truncated[len(truncated)-10:])
	}
}
