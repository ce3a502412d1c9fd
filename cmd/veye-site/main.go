package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"veye-site/internal/api"
	"veye-site/internal/api/handlers"
	"veye-site/internal/assistant"
	"veye-site/internal/knowledge"
	"veye-site/internal/repository"
	"veye-site/internal/service"
	"veye-site/pkg/auth"
	"veye-site/pkg/config"
	"veye-site/pkg/logger"
	"veye-site/pkg/postgres"

	"go.uber.org/zap"
)

// @title Veye Media Site API
// @version 1.0
// @description Site assistant, lead intake and back office for the Veye Media marketing site.

// @contact.name Veye Media
// @contact.email hello@veyemedia.co

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := run(); err != nil {
		logger.Error("Service stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Veye Media site service")

	ctx := context.Background()

	// Knowledge and assistant
	candidates := append(cfg.Knowledge.Paths, knowledge.DefaultCandidates()...)
	provider := knowledge.NewFileProvider(candidates, logger.Named("knowledge"))
	if _, err := provider.Knowledge(ctx); err != nil {
		// Not fatal: the chat endpoint answers with the unavailable reply
		// and the next request tries again.
		appLogger.Warn("Knowledge document not loaded at startup", zap.Error(err))
	}

	enforcer := assistant.NewEnforcer(assistant.EnforcerConfig{
		MaxSentences: cfg.Assistant.MaxSentences,
		TruncateTo:   cfg.Assistant.TruncateTo,
		LinkBase:     cfg.Site.LinkBase,
	})
	router := assistant.NewRouter(provider, enforcer)

	chatOpts := service.ChatOptions{
		Timeout:   cfg.Assistant.Timeout,
		CacheSize: cfg.Assistant.CacheSize,
		Site:      cfg.Site,
	}
	if cfg.Assistant.GenerativeFallback {
		generator, err := service.NewGenerator(ctx, cfg, logger.Named("llm"))
		if err != nil {
			appLogger.Warn("Generative fallback disabled", zap.Error(err))
		} else {
			defer generator.Close()
			chatOpts.Generator = generator
		}
	}

	chatService, err := service.NewChatService(provider, router, chatOpts, logger.Named("chat"))
	if err != nil {
		return err
	}

	// Lead intake
	var mailer service.Mailer
	if smtpMailer, err := service.NewSMTPMailer(cfg.SMTP, logger.Named("mailer")); err != nil {
		appLogger.Warn("Contact form email is not configured", zap.Error(err))
	} else {
		mailer = smtpMailer
	}

	// Optional database
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	var (
		leadStore   service.LeadStore
		authService *service.AuthService
	)
	if cfg.Database.Enabled {
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return err
		}

		leadStore = repository.NewLeadRepository(db, appLogger)
		authService = service.NewAuthService(repository.NewAdminRepository(db, appLogger), jwtManager, logger.Named("auth"))
	} else {
		appLogger.Info("Database disabled, leads are emailed only")
	}

	contactService := service.NewContactService(mailer, leadStore, logger.Named("contact"))

	// Initialize handlers
	app := api.SetupRouter(api.Handlers{
		Chat:      handlers.NewChatHandler(chatService, appLogger),
		Knowledge: handlers.NewKnowledgeHandler(chatService, appLogger),
		Contact:   handlers.NewContactHandler(contactService, appLogger),
		Auth:      handlers.NewAuthHandler(authService, appLogger),
		Leads:     handlers.NewLeadHandler(contactService, appLogger),
	}, jwtManager, cfg, appLogger)

	// Start server
	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		errCh <- app.Listen(addr)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
	return nil
}
