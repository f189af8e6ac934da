package sheets

import (
	"testing"
	"time"
)

// TestRecordRow verifies the fixed six-column order the sheet expects:
// timestamp, chat id, username, user id, phone, name.
func TestRecordRow(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := Record{
		Timestamp: ts,
		ChatID:    123,
		Username:  "alice",
		UserID:    999,
		Phone:     "+1555",
		Name:      "Alice",
	}

	got := rec.Row()
	want := []string{"2024-05-01T12:00:00Z", "123", "@alice", "999", "+1555", "Alice"}
	if len(got) != len(want) {
		t.Fatalf("row length: want %d, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d: want %q, got %q", i, want[i], got[i])
		}
	}
}

// TestRecordRow_NoUsername verifies that a missing username stays an empty
// cell rather than a bare "@".
func TestRecordRow_NoUsername(t *testing.T) {
	rec := Record{Timestamp: time.Now(), ChatID: 1, UserID: 2}
	if got := rec.Row()[2]; got != "" {
		t.Errorf("username column: want empty, got %q", got)
	}
}
