package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/ewilliams-labs/spotifywebapi/internal/core/ports"
	"github.com/ewilliams-labs/spotifywebapi/internal/core/services"
)

// CodeExchanger completes the authorization code flow for a redirect request.
type CodeExchanger interface {
	Token(ctx context.Context, state string, r *http.Request) (*oauth2.Token, error)
}

// Callback configures GET /callback.
type Callback struct {
	Auth  CodeExchanger
	State string
	Store ports.TokenStore
	Label string
	// Done, if set, receives the token after it is stored.
	Done func(*oauth2.Token)
}

// Handler manages the HTTP interface for the playback controller.
type Handler struct {
	svc      *services.Controller
	callback *Callback
	logger   *zap.Logger
	router   chi.Router
}

// NewHandler initializes the HTTP adapter and sets up routes. callback may be
// nil when no OAuth flow is running.
func NewHandler(svc *services.Controller, callback *Callback, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		svc:      svc,
		callback: callback,
		logger:   logger,
		router:   chi.NewRouter(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.Use(middleware.RequestID)
	h.router.Use(middleware.Recoverer)
	h.router.Use(middleware.Timeout(30 * time.Second))
	h.router.Use(h.logRequests)

	h.router.Get("/health", h.HealthCheck)

	h.router.Route("/v1", func(r chi.Router) {
		r.Get("/devices", h.ListDevices)
		r.Get("/player", h.PlaybackState)
		r.Put("/player/pause", h.Pause)
		r.Put("/player/play", h.Play)
		r.Post("/player/queue", h.Enqueue)
	})

	if h.callback != nil {
		h.router.Get("/callback", h.OAuthCallback)
	}
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("handled request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
