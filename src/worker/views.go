package worker

import (
	"net/http"
	"time"

	"kitesync/src/config"
	"kitesync/src/utils"
	"kitesync/src/worker/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	Port    string
}

// NewServer builds the worker server and installs the daily sync schedule.
func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	handler, err := handlers.NewHandler(cfg)
	if err != nil {
		return nil, err
	}

	cronSpec := cfg.Sync.CronSpec
	if cronSpec == "" {
		cronSpec = "0 3 * * *"
	}
	if logger == nil {
		logger = utils.NewLogger(logrus.InfoLevel, false, "")
	}
	if err := handler.ScheduleDailySync(cronSpec, logger); err != nil {
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
	s.Router.Route("/api/sync", func(r chi.Router) {
		r.Post("/all", s.Handler.TriggerSyncAll)
	})
}

func NewHTTPServer(server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + server.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		Handler:      server,
	}
	return httpServer
}
