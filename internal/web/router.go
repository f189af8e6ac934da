package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shlayncha-dot/tgbot-SLS/internal/bot"
	"github.com/shlayncha-dot/tgbot-SLS/internal/handlers"
)

func Router(d *bot.Dispatcher, webhookSecret string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", handlers.Home)
	r.Get("/healthz", handlers.Health)

	r.Post("/tg/webhook", handlers.TelegramWebhook(d, webhookSecret))
	r.Get("/tg/webhook", handlers.Home) // GET probes get the status line

	r.Get("/qr/{code}.png", handlers.QR)
	r.Get("/verified", handlers.Verified)

	return r
}
