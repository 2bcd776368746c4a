package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"tchu/internal/config"
)

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	router   *chi.Mux
	port     int
}

func New(cfg config.Config) *Server {
	s := &Server{
		handlers: NewHandlers(cfg),
		router:   chi.NewRouter(),
		port:     cfg.Port,
	}

	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(chimw.Recoverer)

	s.router.Get("/health", s.handlers.HandleHealth)
	s.router.Route("/api/games", func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Post("/", s.handlers.HandleCreateGame)
		r.Get("/{gameID}/qr", s.handlers.HandleQR)
		r.Post("/{gameID}/seats", s.handlers.HandleJoinSeat)
	})
	// No timeout: the connection is hijacked and long-lived.
	s.router.Get("/ws", s.handlers.HandleWS)
	return s
}

// Router exposes the router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Handlers exposes the handler set so a turn driver can reach the hubs.
func (s *Server) Handlers() *Handlers { return s.handlers }

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Info().Str("addr", addr).Msg("tCHu server starting")
	log.Info().Msgf("POST http://localhost%s/api/games to create a new game", addr)
	return http.ListenAndServe(addr, s.router)
}
