package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/shlayncha-dot/tgbot-SLS/internal/services"
)

// QR renders the verification pass as a PNG. Scanning it opens the
// verified-status page for the same code.
func QR(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		http.NotFound(w, r)
		return
	}
	// ensure code exists
	if _, err := services.FindByCode(code); err != nil {
		http.NotFound(w, r)
		return
	}

	url := "http://" + r.Host + "/verified?code=" + code

	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "failed to generate qr", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// Verified shows whether a pass code belongs to a completed verification.
func Verified(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.NotFound(w, r)
		return
	}
	vu, err := services.FindByCode(code)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Верификация подтверждена: " + vu.Name + " (" + vu.Phone + ")"))
}
