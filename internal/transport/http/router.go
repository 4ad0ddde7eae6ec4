package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/portfolio-api/internal/application/contact"
	"github.com/portfolio-api/internal/application/message"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/domain"
	jwtinfra "github.com/portfolio-api/internal/infrastructure/jwt"
	"github.com/portfolio-api/internal/infrastructure/mail"
	"github.com/portfolio-api/internal/infrastructure/memory"
	"github.com/portfolio-api/internal/transport/http/handler"
	appmiddleware "github.com/portfolio-api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
// Alert, JWTProvider and ContactLimiter are optional.
type Deps struct {
	Messages       MessageRepository
	Verifications  *memory.VerificationStore
	Mailer         mail.Mailer
	Alert          OwnerAlert
	JWTProvider    *jwtinfra.Provider
	ContactLimiter *appmiddleware.RateLimiter
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	})
	r.MethodNotAllowed(handler.MethodNotAllowed())

	limit := func(next http.Handler) http.Handler { return next }
	if deps.ContactLimiter != nil {
		limit = deps.ContactLimiter.Limit
	}

	contactSvc := contact.NewService(contact.ServiceDeps{
		Verifications: deps.Verifications,
		Messages:      deps.Messages,
		Mailer:        deps.Mailer,
		Alert:         deps.Alert,
		CodeTTL:       cfg.VerificationTTL,
	})
	messageSvc := message.NewService(message.ServiceDeps{Messages: deps.Messages, Mailer: deps.Mailer})

	healthH := handler.NewHealthHandler()
	contactH := handler.NewContactHandler(contactSvc)
	messageH := handler.NewMessageHandler(messageSvc)
	postOnly := handler.MethodNotAllowed(http.MethodPost)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)

		r.HandleFunc("/send-verification-code", postOnly)
		r.With(limit).Post("/send-verification-code", contactH.SendCode)
		r.HandleFunc("/verify-code", postOnly)
		r.With(limit).Post("/verify-code", contactH.VerifyCode)

		// ── Admin inbox ──────────────────────────────────────────────────────
		r.Route("/admin", func(r chi.Router) {
			if deps.JWTProvider == nil {
				r.HandleFunc("/*", func(w http.ResponseWriter, _ *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusServiceUnavailable)
					_, _ = w.Write([]byte(`{"error":"admin API disabled"}`))
				})
				return
			}
			r.Use(appmiddleware.Auth(deps.JWTProvider))
			r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

			r.Get("/messages", messageH.List)
			r.Get("/messages/unread", messageH.ListUnread)
			r.Get("/messages/unread-count", messageH.CountUnread)
			r.Get("/messages/{id}", messageH.Get)
			r.Put("/messages/{id}", messageH.Update)
			r.Delete("/messages/{id}", messageH.Delete)
			r.Post("/messages/{id}/reply", messageH.Reply)
		})
	})

	return r
}
