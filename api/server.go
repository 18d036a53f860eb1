package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/setidure/blog-api/config"
	"github.com/setidure/blog-api/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(service *services.BlogService, c map[string]string) (Server, error) {
	port := config.GetString(c, "PORT", "3001")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	router := newRouter(service, withConfig(c), withStartupTime(startupTime))

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 15)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 15)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 60)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(service *services.BlogService, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	responder := NewResponder(log.With().Str("handlerName", "router").Logger())

	chiRouter := chi.NewRouter()
	chiRouter.Use(requestLogger)
	chiRouter.Use(recoverPanics(responder))
	chiRouter.Use(limitBody)

	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.GetStringSlice(router.config, "ALLOWED_ORIGINS", []string{"*"}),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-API-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	limiter := newRateLimiter(
		config.GetInt(router.config, "RATE_LIMIT_MAX", 100),
		config.GetDuration(router.config, "RATE_LIMIT_WINDOW", 15*time.Minute),
	)
	chiRouter.Use(limiter.middleware(responder))

	apiKey := config.GetString(router.config, "API_KEY", "")
	handlers := initializeHandlers(service)

	setupRoutes(chiRouter, handlers, apiKey, responder)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HTTP server gracefully shut down")
	}
}
