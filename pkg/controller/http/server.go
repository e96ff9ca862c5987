package http

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/selec-labs/selecbot/pkg/usecase"
	"github.com/selec-labs/selecbot/pkg/utils/errutil"
	"github.com/selec-labs/selecbot/pkg/utils/logging"
)

type Server struct {
	router        *chi.Mux
	uc            *usecase.UseCases
	webhookSecret string
}

type Options func(*Server)

// WithWebhookSecret enables the shared-secret check on the webhook route.
// The inbound request must carry the secret in the X-Webhook-Secret header.
func WithWebhookSecret(secret string) Options {
	return func(s *Server) {
		s.webhookSecret = secret
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", rootHandler)
	r.Get("/health", healthHandler)

	r.Route("/hooks/salesiq", func(r chi.Router) {
		if s.webhookSecret != "" {
			r.Use(webhookSecretMiddleware(s.webhookSecret))
		}
		r.Get("/", webhookHintHandler)
		r.Post("/", s.handleWebhook)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// webhookSecretMiddleware rejects webhook calls without the shared secret
func webhookSecretMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Webhook-Secret")
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				errutil.HandleHTTP(r.Context(), w,
					goerr.New("invalid webhook secret", goerr.V("remote", r.RemoteAddr)),
					http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("selecbot is running\n")) //nolint:errcheck // best effort
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// webhookHintHandler answers browser GETs on the webhook URL with a hint
// instead of a method error.
func webhookHintHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Use POST desde Zoho SalesIQ",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
