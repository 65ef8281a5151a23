package middleware

import (
	"context"
	"net/http"

	"github.com/edvin/ddns/internal/api/request"
	"github.com/edvin/ddns/internal/api/response"
	"github.com/edvin/ddns/internal/model"
)

type contextKey string

const CredentialsKey contextKey = "credentials"

// Auth decodes the caller's provider credentials from the Authorization header
// and stores them in the request context. The token itself is verified later
// against the provider.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creds, err := request.ParseCredentials(r)
		if err != nil {
			response.WriteServiceError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), CredentialsKey, creds)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCredentials returns the credentials stored by Auth.
func GetCredentials(ctx context.Context) (model.Credentials, bool) {
	creds, ok := ctx.Value(CredentialsKey).(model.Credentials)
	return creds, ok
}
