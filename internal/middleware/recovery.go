package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"labo-backend/pkg/utils"
)

// PanicRecovery turns a handler panic into a 500 instead of killing the
// connection, logging the stack for the postmortem.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[Recovery] panic on %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				utils.Error(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
