package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/edvin/ddns/internal/api/handler"
	mw "github.com/edvin/ddns/internal/api/middleware"
	"github.com/edvin/ddns/internal/cloudflare"
	"github.com/edvin/ddns/internal/config"
	"github.com/edvin/ddns/internal/ddns"
	"github.com/edvin/ddns/internal/model"
)

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	cfg      *config.Config
	notifier ddns.Notifier
}

func NewServer(logger zerolog.Logger, cfg *config.Config, notifier ddns.Notifier) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		cfg:      cfg,
		notifier: notifier,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(mw.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealthz)

	s.router.Group(func(r chi.Router) {
		r.Use(mw.Auth)

		update := handler.NewUpdate(s.newProvider, s.notifier, s.cfg.ClientIPHeader, s.cfg.RequestTimeout)
		// Any method. /nic/update is the dyndns2 path most router firmware uses.
		r.HandleFunc("/update", update.Update)
		r.HandleFunc("/nic/update", update.Update)
	})
}

func (s *Server) newProvider(creds model.Credentials) ddns.Provider {
	return cloudflare.NewClient(s.cfg.CloudflareAPIURL, creds, s.cfg.ProviderTimeout)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
