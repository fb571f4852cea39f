package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hlcc-africa/site-api/internal/http/handlers"
	httpmiddleware "github.com/hlcc-africa/site-api/internal/http/middleware"
	"github.com/hlcc-africa/site-api/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	SendEmail          *handlers.SendEmailHandler
	Mailchimp          *handlers.MailchimpHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", handlers.Health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.SendEmail != nil {
			api.Post("/send-email", cfg.SendEmail.Handle)
		}
		if cfg.Mailchimp != nil {
			api.Post("/mailchimp", cfg.Mailchimp.Handle)
		}
	})

	return r
}
