package api

import (
	"net/http"
	"time"

	"kitesync/src/api/handlers"
	"kitesync/src/config"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	Port    string
}

func NewServer(cfg *config.Config) (*Server, error) {
	handler, err := handlers.NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
		Port:    cfg.Service.Port,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/kite", func(r chi.Router) {
		r.Get("/callback", s.Handler.HandleCallback)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/auth", s.Handler.GetAuthorizationURL)

			r.Post("/holdings/sync", s.Handler.SyncHoldings)
			r.Post("/positions/sync", s.Handler.SyncPositions)
			r.Post("/orders/sync", s.Handler.SyncOrders)

			r.Get("/holdings", s.Handler.GetHoldings)
			r.Get("/positions", s.Handler.GetPositions)
			r.Get("/orders", s.Handler.GetOrders)
			r.Get("/sync-logs", s.Handler.GetSyncLogs)
		})
	})
}

func NewHTTPServer(server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + server.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		Handler:      server,
	}
	return httpServer
}
