package bot

import (
	"net/url"

	"github.com/shlayncha-dot/tgbot-SLS/internal/events"
	"github.com/shlayncha-dot/tgbot-SLS/internal/models"
)

// SubscribeVerified sends the verification pass QR after a successful
// write. Needs a public base URL for Telegram to fetch the image from.
func SubscribeVerified(c *Client, publicBaseURL string) {
	if publicBaseURL == "" {
		return
	}
	events.OnVerified = func(vu models.VerifiedUser) {
		if vu.Code == "" {
			return
		}
		photo := publicBaseURL + "/qr/" + url.PathEscape(vu.Code) + ".png"
		_ = c.SendPhoto(vu.ChatID, photo, "Ваш пропуск: "+vu.Code)
	}
}
