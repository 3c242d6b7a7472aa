package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/amqp"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/config"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/handler"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/middleware"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/repository/postgres"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/service"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/token"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/websocket"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	entryRepo := postgres.NewBudgetEntryRepository(pool)

	// Tokens
	secret := []byte(cfg.JWT.Secret)
	issuer, err := token.NewIssuer(secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token issuer")
	}
	verifier, err := token.NewVerifier(secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token verifier")
	}

	// Change events go to websocket clients and, when configured, to the broker
	hub := websocket.NewHub()
	var publisher websocket.EventPublisher = hub
	if cfg.AMQP.Enabled() {
		broker, err := amqp.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to AMQP broker")
		}
		defer broker.Close()
		publisher = websocket.MultiPublisher{hub, broker}
		log.Info().Str("exchange", cfg.AMQP.Exchange).Msg("Publishing events to AMQP")
	}

	// Initialize services
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, issuer)
	categoryService := service.NewCategoryService(categoryRepo)
	categoryService.SetEventPublisher(publisher)
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo, entryRepo)
	budgetService.SetEventPublisher(publisher)
	entryService := service.NewBudgetEntryService(entryRepo, budgetRepo)
	entryService.SetEventPublisher(publisher)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(verifier, userRepo)
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.AuthRateLimit, cfg.AuthRateBurst)
	defer rateLimiter.Stop()

	// Initialize handlers
	handlers := handler.Handlers{
		User:        handler.NewUserHandler(userService),
		Auth:        handler.NewAuthHandler(authService),
		Category:    handler.NewCategoryHandler(categoryService, cfg.PageSize),
		Budget:      handler.NewBudgetHandler(budgetService, cfg.PageSize),
		BudgetEntry: handler.NewBudgetEntryHandler(entryService),
		WebSocket:   handler.NewWebSocketHandler(hub, websocket.NewTokenValidator(verifier, userRepo), cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		MaxAge:       86400,
	}))

	// Security headers middleware
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	e.Use(middleware.RequestLogger())
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	handler.RegisterRoutes(e, authMiddleware, rateLimiter, handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
