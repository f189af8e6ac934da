package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/shlayncha-dot/tgbot-SLS/internal/bot"
)

// TelegramWebhook accepts one update per request. The transport delivers
// at-least-once and must not retry because of downstream failures, so the
// reply is 200 "OK" no matter what happened inside.
func TelegramWebhook(d *bot.Dispatcher, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Simple secret check: /tg/webhook?secret=...
		if secret != "" && r.URL.Query().Get("secret") != secret {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		defer r.Body.Close()
		b, _ := io.ReadAll(r.Body)

		var up bot.Update
		if err := json.Unmarshal(b, &up); err != nil {
			slog.Warn("webhook: bad update payload", "error", err)
		} else {
			d.Handle(&up)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
