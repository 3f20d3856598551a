package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/taskhub/taskhub/internal/handlers"
)

// Recoverer turns a handler panic into a logged 500 with a JSON body, so one
// bad request cannot take the process down.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered",
					"request_id", chimw.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()))
				handlers.JSONError(w, handlers.ErrMessageInternal, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
