package bot

import (
	"log/slog"
	"time"

	"github.com/shlayncha-dot/tgbot-SLS/internal/session"
)

// StartSessionSweep drops expired dialogue sessions in the background so an
// abandoned verification cannot be resumed later and the store stays small.
func StartSessionSweep(store session.Store, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for range ticker.C {
			if n := store.Sweep(time.Now()); n > 0 {
				slog.Info("expired sessions dropped", "count", n)
			}
		}
	}()
}
