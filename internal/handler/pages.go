package handler

import (
	"log/slog"
	"net/http"

	"github.com/micropost/micropost-go/web"
)

// ServePage returns a handler serving one embedded static page.
func ServePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := web.Pages.ReadFile("static/" + name)
		if err != nil {
			slog.Error("reading embedded page failed", "page", name, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(data)
	}
}
