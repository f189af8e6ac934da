package web

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shlayncha-dot/tgbot-SLS/internal/bot"
	"github.com/shlayncha-dot/tgbot-SLS/internal/db"
	"github.com/shlayncha-dot/tgbot-SLS/internal/session"
	"github.com/shlayncha-dot/tgbot-SLS/internal/sheets"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	if err := db.Init(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("db init: %v", err)
	}
	tg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(tg.Close)

	d := bot.NewDispatcher(
		bot.NewClientWithAPI("TEST", tg.URL),
		session.NewMemoryStore(),
		sheets.UnconfiguredWriter{},
		30*time.Minute,
	)
	return Router(d, "s3cret")
}

func TestRouterHealthz(t *testing.T) {
	r := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// TestRouterStatus verifies GET probes on the webhook host answer with the
// running banner.
func TestRouterStatus(t *testing.T) {
	r := testRouter(t)
	for _, path := range []string{"/", "/tg/webhook"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != 200 || !strings.Contains(rec.Body.String(), "Bot is running") {
			t.Errorf("GET %s: code=%d body=%q", path, rec.Code, rec.Body.String())
		}
	}
}

// TestWebhook_SecretRequired verifies a wrong or missing secret is rejected.
func TestWebhook_SecretRequired(t *testing.T) {
	r := testRouter(t)
	for _, url := range []string{"/tg/webhook", "/tg/webhook?secret=wrong"} {
		req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("POST %s: want 403, got %d", url, rec.Code)
		}
	}
}

// TestWebhook_AlwaysOK verifies the webhook answers 200 "OK" for valid
// updates, malformed payloads, and updates whose downstream write fails.
func TestWebhook_AlwaysOK(t *testing.T) {
	r := testRouter(t)
	bodies := []string{
		`{"message":{"chat":{"id":1},"from":{"id":2},"text":"/start"}}`,
		`not json at all`,
		// name step over an unconfigured backend: the write fails inside
		`{"message":{"chat":{"id":1},"from":{"id":2},"text":"Alice","reply_to_message":{"text":"` + bot.PhoneEcho("+1555") + `"}}}`,
	}
	for _, body := range bodies {
		req := httptest.NewRequest(http.MethodPost, "/tg/webhook?secret=s3cret", strings.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != 200 || rec.Body.String() != "OK" {
			t.Errorf("POST %q: code=%d body=%q", body, rec.Code, rec.Body.String())
		}
	}
}
