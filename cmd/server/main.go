package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/shlayncha-dot/tgbot-SLS/internal/bot"
	"github.com/shlayncha-dot/tgbot-SLS/internal/config"
	"github.com/shlayncha-dot/tgbot-SLS/internal/db"
	"github.com/shlayncha-dot/tgbot-SLS/internal/session"
	"github.com/shlayncha-dot/tgbot-SLS/internal/sheets"
	"github.com/shlayncha-dot/tgbot-SLS/internal/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := db.Init(cfg.DBPath); err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	writer, err := sheets.NewWriter(cfg)
	if err != nil {
		// The bot still runs the dialogue; the write failure diagnostic is
		// delivered in chat instead.
		slog.Warn("Spreadsheet backend not configured", "error", err)
		writer = sheets.UnconfiguredWriter{}
	} else if cfg.HasRelay() {
		slog.Info("Using relay spreadsheet backend", "url", cfg.RelayURL)
	} else {
		slog.Info("Using direct spreadsheet backend", "service_account", cfg.ServiceAccountEmail)
	}

	client := bot.NewClient(cfg.BotToken)
	store := session.NewDBStore(db.Conn())
	dispatcher := bot.NewDispatcher(client, store, writer, cfg.SessionTTL)

	bot.SubscribeVerified(client, cfg.PublicBaseURL)
	bot.StartSessionSweep(store, 0)

	if cfg.WebhookURL != "" {
		url := cfg.WebhookURL
		if cfg.WebhookSecret != "" {
			url += "?secret=" + cfg.WebhookSecret
		}
		if err := client.SetWebhook(url); err != nil {
			slog.Error("Failed to register webhook", "error", err)
		} else {
			slog.Info("Webhook registered", "url", cfg.WebhookURL)
		}
	}

	r := web.Router(dispatcher, cfg.WebhookSecret)

	slog.Info("Server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
