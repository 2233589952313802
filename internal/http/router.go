package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"aitoolkit-web/internal/handlers"
	"aitoolkit-web/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService    service.ChatService
	Backend        handlers.Pinger
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.ChatService)
	healthHandler := handlers.NewHealthHandler(deps.Backend)
	infoHandler := handlers.NewInfoHandler()

	rateLimiter := NewRateLimiter(deps.RateLimitRPS, deps.RateLimitBurst)

	r.Route("/api", func(r chi.Router) {
		r.With(rateLimiter.Middleware).Method(http.MethodPost, "/chat", chatHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	r.Method(http.MethodGet, "/", infoHandler)

	return r
}
