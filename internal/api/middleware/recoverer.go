package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/edvin/ddns/internal/api/response"
)

// Recoverer turns a panic into the generic 500 response and logs the stack
// through the request logger.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			zerolog.Ctx(r.Context()).Error().
				Interface("panic", rvr).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			response.WriteError(w, http.StatusInternalServerError, response.InternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
