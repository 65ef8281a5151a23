package response

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/edvin/ddns/internal/ddns"
)

// InternalServerError is the only body sent for unexpected failures.
const InternalServerError = "Internal Server Error"

// WriteText writes a plain-text body. Router firmwares parse the body as-is,
// so no JSON wrapping is applied.
func WriteText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// WriteError writes a plain-text error body with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteText(w, status, message)
}

// WriteServiceError maps err to a response. A *ddns.Error is written with its
// own status and message; anything else is logged and reported as a generic
// 500 without detail.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	var de *ddns.Error
	if errors.As(err, &de) {
		logger.Info().
			Str("kind", de.Kind.String()).
			Int("status", de.Status).
			Str("reason", de.Message).
			Msg("update rejected")
		WriteError(w, de.Status, de.Message)
		return
	}

	logger.Error().Err(err).Msg("unexpected error")
	WriteError(w, http.StatusInternalServerError, InternalServerError)
}
