// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api is the composition root of the social backend: it builds the
domain services over one [Stores] set and mounts their handlers under
/api/v1.

Route table:

	/health, /ready
	/api/v1/auth           register, login, refresh, logout, me, password
	/api/v1/users          profiles, search, recommendations, availability
	/api/v1/posts          feed, explore, search, CRUD, likes, stats
	/api/v1/comments       threads, CRUD, likes
	/api/v1/follows        toggle, follow, unfollow, status, lists, counts
	/api/v1/verification   submit, status, requirements, review
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/config"
	"github.com/taibuivan/yomira-social/internal/platform/constants"
	"github.com/taibuivan/yomira-social/internal/platform/middleware"
	"github.com/taibuivan/yomira-social/internal/platform/respond"
	"github.com/taibuivan/yomira-social/internal/social/comment"
	"github.com/taibuivan/yomira-social/internal/social/follow"
	"github.com/taibuivan/yomira-social/internal/social/post"
	"github.com/taibuivan/yomira-social/internal/social/verification"
	"github.com/taibuivan/yomira-social/internal/users/account"
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

// Handlers is one handler per route group plus the two probes.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Auth         *auth.Handler
	Account      *account.Handler
	Post         *post.Handler
	Comment      *comment.Handler
	Follow       *follow.Handler
	Verification *verification.Handler
}

// Server is the HTTP listener over the routed handlers.
type Server struct {
	http   *http.Server
	logger *slog.Logger
}

/*
NewServer mounts h behind the middleware chain.

context stops the rate limiter's eviction loop; pass the process root
context. Unknown routes and methods answer with the NOT_FOUND envelope.
*/
func NewServer(context context.Context, cfg *config.Config, logger *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	router := chi.NewRouter()

	router.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(logger),
		middleware.PanicRecovery(logger),
		middleware.CORS(cfg),
		middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst),
		chimw.CleanPath,
		chimw.Timeout(constants.GlobalRequestTimeout),
		middleware.Authenticate(verifier),
	)

	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	router.Get("/health", h.Liveness)
	router.Get("/ready", h.Readiness)

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Mount("/auth", h.Auth.Routes())
		v1.Mount("/users", h.Account.Routes())
		v1.Mount("/posts", h.Post.Routes())
		v1.Mount("/comments", h.Comment.Routes())
		v1.Mount("/follows", h.Follow.Routes())
		v1.Mount("/verification", h.Verification.Routes())
	})

	return &Server{
		logger: logger,
		http: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.GlobalRequestTimeout + constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
		},
	}
}

func notFound(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, apperr.NotFound("Route"))
}

// Handler returns the routed handler for httptest.
func (server *Server) Handler() http.Handler {
	return server.http.Handler
}

// ListenAndServe blocks until the listener fails or [Server.Shutdown] runs,
// in which case it returns [http.ErrServerClosed].
func (server *Server) ListenAndServe() error {
	server.logger.Info("server_listening", slog.String("addr", server.http.Addr))
	return server.http.ListenAndServe()
}

// Shutdown drains in-flight requests for at most timeout.
func (server *Server) Shutdown(timeout time.Duration) error {
	bounded, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.http.Shutdown(bounded)
}
