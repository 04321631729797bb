package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"melodymesh/config"
	_ "melodymesh/docs"
	authadapter "melodymesh/internal/adapters/auth"
	emailadapter "melodymesh/internal/adapters/email"
	delivery "melodymesh/internal/delivery/http"
	"melodymesh/internal/delivery/http/controllers"
	"melodymesh/internal/delivery/http/middleware"
	"melodymesh/internal/domain"
	"melodymesh/internal/repository/postgres"
	"melodymesh/internal/services"
)

const (
	bcryptCost       = 10
	catalogTimeout   = 5 * time.Second
	shutdownDeadline = 10 * time.Second
)

// @title Melody Mesh API
// @version 1.0
// @description Event registration and content management backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.Environment)

	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	// Repositories
	accountRepo := postgres.NewAccountRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	contactRepo := postgres.NewContactRepository(db)

	// Adapters
	hasher := authadapter.NewBcryptHasher(bcryptCost)
	signer := authadapter.NewJWTSigner(cfg.JWTSecret)
	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer(), cfg.Email.NotifyAddress)
	accountService := services.NewAccountService(accountRepo, hasher, signer, cfg.JWTExpiry, domain.BootstrapAccount{
		Username: cfg.Operator.Username,
		Password: cfg.Operator.Password,
		Name:     cfg.Operator.Name,
		Email:    cfg.Operator.Email,
	})
	catalogService := services.NewCatalogService(eventRepo, catalogTimeout)
	contactService := services.NewContactService(contactRepo, emailService)

	// The operator row must converge before any request is served.
	if err := accountService.EnsureOperatorAccount(context.Background()); err != nil {
		logger.Error("failed to ensure operator account", "err", err)
		os.Exit(1)
	}

	// Controllers and router
	accountController := controllers.NewAccountController(logger, accountService)
	eventController := controllers.NewEventController(logger, catalogService)
	contactController := controllers.NewContactController(logger, contactService)

	mux := delivery.NewRouter(accountController, eventController, contactController, signer)
	handler := middleware.CORS(cfg.AllowedOrigins,
		middleware.RequestID(
			middleware.LoggingMiddleware(logger, mux)))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
