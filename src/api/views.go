package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/rs/cors"

	handlers "tracker/src/api/handlers"
	"tracker/src/config"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	config  *config.Config
}

func NewServer(cfg *config.Config, handler *handlers.Handler) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
		config:  cfg,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.RealIP)
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(cors.New(cors.Options{
		AllowedOrigins:   s.config.Service.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api", func(r chi.Router) {
		// bearer tokens are only enforced when a signing secret is configured
		if secret := s.config.Service.JWTSecret; secret != "" {
			tokenAuth := jwtauth.New("HS256", []byte(secret), nil)
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(jwtauth.Authenticator)
		}

		r.Post("/process", s.Handler.ProcessText)
		r.Get("/dashboard", s.Handler.GetDashboard)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.Handler.GetTransactions)
			r.Post("/", s.Handler.CreateTransaction)
			r.Get("/export", s.Handler.ExportTransactions)
		})

		r.Route("/asset_transactions", func(r chi.Router) {
			r.Get("/", s.Handler.GetAssetTransactions)
			r.Post("/", s.Handler.CreateAssetTransaction)
			r.Post("/import", s.Handler.ImportAssetTransactions)
		})

		r.Get("/asset_holdings", s.Handler.GetHoldings)

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", s.Handler.GetPortfolio)
			r.Get("/export", s.Handler.ExportPortfolio)
		})
	})
}

func NewHTTPServer(cfg *config.Config, server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + cfg.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: handlers.ImportTimeout + 30*time.Second,
		Handler:      server,
	}
	return httpServer
}
