package services

import (
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/shlayncha-dot/tgbot-SLS/internal/db"
	"github.com/shlayncha-dot/tgbot-SLS/internal/events"
	"github.com/shlayncha-dot/tgbot-SLS/internal/models"
	"github.com/shlayncha-dot/tgbot-SLS/internal/sheets"
)

type fakeWriter struct {
	records []sheets.Record
	err     error
}

func (f *fakeWriter) Write(rec sheets.Record) error {
	f.records = append(f.records, rec)
	return f.err
}

func initTestDB(t *testing.T) {
	t.Helper()
	if err := db.Init(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("db init: %v", err)
	}
}

var codeRE = regexp.MustCompile(`^VER-[0-9]{6}$`)

// TestCompleteVerification_Success verifies the happy path: one append, a
// durable verified-user row with a well-formed code, and the event fired.
func TestCompleteVerification_Success(t *testing.T) {
	initTestDB(t)
	w := &fakeWriter{}

	var firedChat int64
	events.OnVerified = func(vu models.VerifiedUser) { firedChat = vu.ChatID }
	t.Cleanup(func() { events.OnVerified = nil })

	rec := sheets.Record{
		Timestamp: time.Now(),
		ChatID:    123,
		Username:  "alice",
		UserID:    999,
		Phone:     "+1555",
		Name:      "Alice",
	}
	vu, err := CompleteVerification(w, rec)
	if err != nil {
		t.Fatalf("CompleteVerification: %v", err)
	}
	if len(w.records) != 1 {
		t.Fatalf("writes: want 1, got %d", len(w.records))
	}
	if !codeRE.MatchString(vu.Code) {
		t.Errorf("code %q does not match VER-[0-9]{6}", vu.Code)
	}
	if !IsVerified(999) {
		t.Error("user not in the durable verified set")
	}
	got, err := FindByCode(vu.Code)
	if err != nil {
		t.Fatalf("FindByCode: %v", err)
	}
	if got.Phone != "+1555" || got.Name != "Alice" {
		t.Errorf("stored row: %+v", got)
	}
	if firedChat != 123 {
		t.Errorf("OnVerified fired with chat %d", firedChat)
	}
}

// TestCompleteVerification_WriteFails verifies a backend failure leaves no
// verified-user row behind.
func TestCompleteVerification_WriteFails(t *testing.T) {
	initTestDB(t)
	w := &fakeWriter{err: &sheets.Error{Kind: sheets.KindPermission, Status: 403}}

	_, err := CompleteVerification(w, sheets.Record{Timestamp: time.Now(), ChatID: 1, UserID: 2})
	if err == nil {
		t.Fatal("expected error")
	}
	if IsVerified(2) {
		t.Error("failed write still marked the user verified")
	}
}
