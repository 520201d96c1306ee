package app

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"procasa_backend/internal/config"
	"procasa_backend/internal/database"
	"procasa_backend/internal/email"
	"procasa_backend/internal/handlers"
	"procasa_backend/internal/identity"
	"procasa_backend/internal/logger"
	"procasa_backend/internal/routes"
	"procasa_backend/internal/services"
	"procasa_backend/internal/suggest"
	"procasa_backend/internal/workers"
	"procasa_backend/internal/ws"
)

// Run boots the full application: config, database, providers, services,
// workers and the HTTP server. Blocks until shutdown.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	db, err := database.Connect(cfg.Database.DSN, cfg.Server.Env)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	mailer := buildMailer(cfg)
	defer mailer.Close()

	wsManager := ws.NewManager()
	go wsManager.Run()

	container := services.NewServiceContainer(cfg, services.Providers{
		Identity: identity.NewGoogleProvider(cfg.Identity.GoogleClientID),
		Suggest: suggest.NewHTTPProvider(suggest.HTTPConfig{
			BaseURL: cfg.Suggest.BaseURL,
			APIKey:  cfg.Suggest.APIKey,
			Timeout: time.Duration(cfg.Suggest.TimeoutSec) * time.Second,
		}),
		Mailer:    mailer,
		Publisher: wsManager,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go workers.NewSubscriptionWorker(db, time.Hour).Start(ctx)

	appHandlers := handlers.NewAppHandlers(container, wsManager)
	router := routes.SetupRouter(db, appHandlers, cfg.Server.Env)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildMailer(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("smtp not configured, emails will be dropped")
		return &email.MockProvider{}
	}

	provider := email.NewSMTPProvider(email.Config{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
	})
	if err := provider.Validate(); err != nil {
		logger.Warn("smtp config invalid, emails will be dropped", "error", err)
		return &email.MockProvider{}
	}
	return provider
}
