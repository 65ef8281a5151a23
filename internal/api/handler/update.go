package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	mw "github.com/edvin/ddns/internal/api/middleware"
	"github.com/edvin/ddns/internal/api/request"
	"github.com/edvin/ddns/internal/api/response"
	"github.com/edvin/ddns/internal/ddns"
	"github.com/edvin/ddns/internal/model"
)

// ProviderFactory builds a provider bound to one caller's credentials.
type ProviderFactory func(creds model.Credentials) ddns.Provider

type Update struct {
	newProvider    ProviderFactory
	notifier       ddns.Notifier
	clientIPHeader string
	timeout        time.Duration
}

// NewUpdate creates the update handler. timeout caps every provider call made
// for one request; zero means no cap beyond the per-call client timeout.
func NewUpdate(newProvider ProviderFactory, notifier ddns.Notifier, clientIPHeader string, timeout time.Duration) *Update {
	return &Update{newProvider: newProvider, notifier: notifier, clientIPHeader: clientIPHeader, timeout: timeout}
}

// Update godoc
//
//	@Summary		Update DNS records
//	@Description	Points one or more existing A/AAAA records at the supplied IP. Credentials are "Basic base64(email:token)". ip=auto uses the trusted client IP header. Every hostname must match exactly one record across the token's zones.
//	@Tags			DDNS
//	@Param			ip			query		string	false	"IP address or auto (alias: myip)"
//	@Param			hostname	query		string	false	"Comma-separated hostnames (alias: hostnames)"
//	@Success		200			{string}	string	"OK"
//	@Failure		400			{string}	string
//	@Failure		401			{string}	string
//	@Failure		422			{string}	string
//	@Failure		500			{string}	string
//	@Router			/update [get]
func (h *Update) Update(w http.ResponseWriter, r *http.Request) {
	creds, ok := mw.GetCredentials(r.Context())
	if !ok {
		response.WriteServiceError(w, r, errors.New("credentials missing from request context"))
		return
	}

	changes, err := request.ParseUpdate(r, h.clientIPHeader)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	updater := ddns.NewUpdater(h.newProvider(creds), h.notifier)
	if err := updater.Apply(ctx, changes); err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteText(w, http.StatusOK, "OK")
}
