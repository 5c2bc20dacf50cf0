package web

import (
	"net/http"
	"time"

	"ai-chat-backend/internal/infra/logging"
	"ai-chat-backend/internal/infra/metrics"
	"ai-chat-backend/internal/usecase"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	authUC  usecase.AuthUseCase
	chatUC  usecase.ChatUseCase
	auth    *AuthManager
	origins map[string]bool
	log     *zerolog.Logger
}

func NewServer(
	authUC usecase.AuthUseCase,
	chatUC usecase.ChatUseCase,
	auth *AuthManager,
	allowedOrigins []string,
	logger *zerolog.Logger,
) *Server {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &Server{
		authUC:  authUC,
		chatUC:  chatUC,
		auth:    auth,
		origins: origins,
		log:     logger,
	}
}

// Router builds the full HTTP surface: the JSON API, the health probe
// and the Prometheus scrape endpoint.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.corsMiddleware)
	r.Use(s.observeMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		// The frontend historically hit logout with a plain link, so GET
		// is accepted alongside POST.
		r.Post("/logout", s.handleLogout)
		r.Get("/logout", s.handleLogout)
		r.Get("/me", s.handleMe)
		r.Post("/chat", s.handleChat)
		r.Get("/chat/history", s.handleHistory)
	})
	return r
}

// corsMiddleware answers preflight requests and reflects allowed origins.
// Credentials are always allowed because the session rides on a cookie.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (s.origins[origin] || s.origins["*"]) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				h.Set("Access-Control-Max-Age", "600")
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) observeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		ctx := logging.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		metrics.ObserveHTTPRequest(route, r.Method, rec.status, float64(elapsed.Milliseconds()))
		logging.With(ctx, s.log).Info().
			Str("method", r.Method).
			Str("route", route).
			Int("status", rec.status).
			Dur("elapsed", elapsed).
			Msg("http request")
	})
}
