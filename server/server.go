package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pokerd/pokerd"
	"github.com/rs/zerolog"
)

type Options struct {
	Addr           string
	Logger         zerolog.Logger
	Tokens         map[string]string // key: bearer token, value: player_id
	DefaultSetting pokerd.TableSetting
	EngineOptions  *pokerd.TableEngineOptions
}

func NewOptions() Options {
	return Options{
		Addr:           ":3000",
		Logger:         zerolog.Nop(),
		Tokens:         make(map[string]string),
		DefaultSetting: pokerd.NewDefaultTableSetting(),
		EngineOptions:  pokerd.NewTableEngineOptions(),
	}
}

/*
Server 對外 HTTP 介面
  - 桌次操作轉給 pokerd.Manager
  - 桌次狀態事件透過 websocket 廣播
*/
type Server struct {
	options Options
	logger  zerolog.Logger
	manager pokerd.Manager
	hub     *Hub
	router  chi.Router
}

func New(manager pokerd.Manager, options Options) *Server {
	if options.EngineOptions == nil {
		options.EngineOptions = pokerd.NewTableEngineOptions()
	}
	if options.Tokens == nil {
		options.Tokens = make(map[string]string)
	}

	s := &Server{
		options: options,
		logger:  options.Logger,
		manager: manager,
		hub:     NewHub(options.Logger),
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Server is running"))
	})
	r.Get("/ws", s.hub.HandleWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/tables", func(r chi.Router) {
			r.Get("/", s.handleListTables)
			r.Post("/", s.handleCreateTable)

			r.Route("/{tableID}", func(r chi.Router) {
				r.Get("/", s.handleGetTable)
				r.Delete("/", s.handleRemoveTable)
				r.Post("/join", s.handleJoin)
				r.Post("/leave", s.handleLeave)
				r.Post("/ready", s.handleReady)
				r.Post("/start", s.handleStartHand)
				r.Post("/close", s.handleCloseTable)
				r.Post("/actions", s.handleAction)
				r.Get("/hand", s.handleHoleCards)
				r.Get("/board/{street}", s.handleBoard)
			})
		})
	})

	return r
}

// ListenAndServe blocks until ctx is done or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.options.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.options.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}
