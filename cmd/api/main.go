package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/codegrader/codegrader-api/internal/config"
	"github.com/codegrader/codegrader-api/internal/database"
	"github.com/codegrader/codegrader-api/internal/handler"
	"github.com/codegrader/codegrader-api/internal/middleware"
	"github.com/codegrader/codegrader-api/internal/models"
	"github.com/codegrader/codegrader-api/internal/repository"
	"github.com/codegrader/codegrader-api/internal/router"
	"github.com/codegrader/codegrader-api/internal/service"
	"github.com/codegrader/codegrader-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Assignment{}, &models.Submission{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer cache.Close()
	}

	scorer, err := ai.NewOpenAIScorer(ai.OpenAIConfig{
		APIKey:    cfg.OpenAIAPIKey,
		Model:     cfg.AIModel,
		MaxTokens: cfg.AIMaxTokens,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("failed to create ai scorer: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, validate, cache, cfg.AssignmentCacheTTL, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, userRepo, scorer, cfg.AITimeout, logger)
	bootstrap := service.NewBootstrapService(userRepo, cfg.AdminEmail, cfg.AdminPassword, logger)

	if err := bootstrap.EnsureAdmin(context.Background()); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		UserHandler:       handler.NewUserHandler(authService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
