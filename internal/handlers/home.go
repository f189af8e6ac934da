package handlers

import "net/http"

// Home answers GET probes on the webhook host.
func Home(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Bot is running"))
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
