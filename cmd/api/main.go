package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hlcc-africa/site-api/cmd/mainconfig"
	"github.com/hlcc-africa/site-api/internal/api/router"
	appconfig "github.com/hlcc-africa/site-api/internal/config"
	"github.com/hlcc-africa/site-api/internal/http/handlers"
	"github.com/hlcc-africa/site-api/internal/mailchimp"
	"github.com/hlcc-africa/site-api/internal/notify"
	"github.com/hlcc-africa/site-api/pkg/logging"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting site API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"email_provider", cfg.EmailProvider,
	)

	sender := buildEmailSender(cfg, logger)
	if sender == nil {
		logger.Warn("no email provider configured; /api/send-email will return 500")
	}

	var list handlers.ListUpserter
	if cfg.MailchimpConfigured() {
		mc, err := mailchimp.New(mailchimp.Config{
			APIKey:     cfg.MailchimpAPIKey,
			AudienceID: cfg.MailchimpAudienceID,
			Timeout:    cfg.ProviderTimeout,
			Logger:     logger,
		})
		if err != nil {
			logger.Error("mailchimp client init failed", "error", err)
		} else {
			list = mc
		}
	} else {
		logger.Warn("mailchimp not configured; /api/mailchimp will return 500")
	}

	sendEmailHandler := handlers.NewSendEmailHandler(sender, handlers.SendEmailConfig{
		ToEmail:   cfg.NotifyToEmail,
		FromEmail: cfg.NotifyFromEmail,
		FromName:  cfg.CourtesyFromName,
		Timeout:   cfg.ProviderTimeout,
	}, logger)
	mailchimpHandler := handlers.NewMailchimpHandler(list, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		SendEmail:          sendEmailHandler,
		Mailchimp:          mailchimpHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: []string{"*"},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildEmailSender picks the transactional email provider from config.
// A nil return means no provider could be configured.
func buildEmailSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			return nil
		}
		if s := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.NotifyFromEmail,
			FromName:  cfg.CourtesyFromName,
		}, logger); s != nil {
			return s
		}
	case "stub":
		return notify.NewStubEmailSender(logger)
	default:
		if s := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); s != nil {
			return s
		}
	}
	return nil
}
