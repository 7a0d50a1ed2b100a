// Package httpserver exposes the Dogial HTTP/JSON API.
package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/and161185/dogial/internal/metrics"
	"github.com/and161185/dogial/internal/service"
)

// Deps are the collaborators of the HTTP layer.
type Deps struct {
	Auth   service.AuthService
	Users  service.UserService
	Dogs   service.DogService
	Tokens TokenParser
	Log    *zap.Logger

	// Metrics is optional; when nil /metrics is not mounted.
	Metrics *metrics.Metrics
	// Ping is optional and backs /health.
	Ping func(ctx context.Context) error
}

// Server wires services into HTTP handlers.
type Server struct {
	auth  service.AuthService
	users service.UserService
	dogs  service.DogService
	m     *metrics.Metrics
	ping  func(ctx context.Context) error
	log   *zap.Logger
}

// routes registers handlers together with their access policy.
type routes struct {
	r      chi.Router
	tokens TokenParser
}

func (rt routes) handle(method, pattern string, policy Policy, h http.HandlerFunc) {
	rt.r.With(Guard(policy, rt.tokens)).Method(method, pattern, h)
}

// New builds the router.
func New(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{auth: d.Auth, users: d.Users, dogs: d.Dogs, m: d.Metrics, ping: d.Ping, log: log}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(Logging(log))
	r.Use(Metrics(d.Metrics))
	r.Use(Recover(log))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("no such route"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
	})

	rt := routes{r: r, tokens: d.Tokens}

	rt.handle(http.MethodGet, "/health", Anonymous, s.health)
	if d.Metrics != nil {
		rt.handle(http.MethodGet, "/metrics", Anonymous, d.Metrics.Handler().ServeHTTP)
	}

	rt.handle(http.MethodPost, "/authentication/login", Anonymous, s.login)

	rt.handle(http.MethodPost, "/v1/users", Anonymous, s.createUser)
	rt.handle(http.MethodGet, "/v1/users/{id}", Authenticated, s.getUser)
	rt.handle(http.MethodPut, "/v1/users/{id}", Authenticated, s.replaceUser)
	rt.handle(http.MethodPatch, "/v1/users/{id}", Authenticated, s.patchUser)
	rt.handle(http.MethodDelete, "/v1/users/{id}", Authenticated, s.deleteUser)
	rt.handle(http.MethodGet, "/v1/users/{id}/dogs", Authenticated, s.listUserDogs)

	rt.handle(http.MethodPost, "/v1/dogs", Authenticated, s.createDog)
	rt.handle(http.MethodGet, "/v1/dogs/{id}", Authenticated, s.getDog)
	rt.handle(http.MethodPut, "/v1/dogs/{id}", Authenticated, s.replaceDog)
	rt.handle(http.MethodPatch, "/v1/dogs/{id}", Authenticated, s.patchDog)
	rt.handle(http.MethodDelete, "/v1/dogs/{id}", Authenticated, s.deleteDog)

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.ping != nil {
		if err := s.ping(r.Context()); err != nil {
			s.log.Warn("health", zap.Error(err))
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
