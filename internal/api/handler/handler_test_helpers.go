package handler

import (
	"context"
	"net/http"
	"net/http/httptest"

	mw "github.com/edvin/ddns/internal/api/middleware"
	"github.com/edvin/ddns/internal/model"
)

// newRequest creates a new HTTP request for the given target.
func newRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// withCredentials injects decoded credentials the way the Auth middleware does.
func withCredentials(r *http.Request, creds model.Credentials) *http.Request {
	ctx := context.WithValue(r.Context(), mw.CredentialsKey, creds)
	return r.WithContext(ctx)
}

var testCreds = model.Credentials{Email: "user@example.com", Secret: "test-token"}
