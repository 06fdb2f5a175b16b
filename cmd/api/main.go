package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/promo-platform/backend/internal/apperr"
	"github.com/promo-platform/backend/internal/auth"
	"github.com/promo-platform/backend/internal/config"
	"github.com/promo-platform/backend/internal/db"
	"github.com/promo-platform/backend/internal/events"
	apphttp "github.com/promo-platform/backend/internal/http"
	"github.com/promo-platform/backend/internal/http/dto"
	"github.com/promo-platform/backend/internal/http/handlers"
	"github.com/promo-platform/backend/internal/repositories"
	"github.com/promo-platform/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Auth primitives
	whitelist := auth.NewWhitelist(rdb)
	hasher := auth.NewHasher(cfg.BcryptCost, cfg.HashWorkers)

	// Repositories
	companyRepo := repositories.NewCompanyRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	promoRepo := repositories.NewPromoRepo(pool)
	engagementRepo := repositories.NewEngagementRepo(pool)
	commentRepo := repositories.NewCommentRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	companyService := services.NewCompanyService(companyRepo, whitelist, hasher, cfg, log)
	userService := services.NewUserService(userRepo, whitelist, hasher, cfg, log)
	promoService := services.NewPromoService(promoRepo, companyRepo, log)
	engagementService := services.NewEngagementService(engagementRepo, commentRepo, promoRepo, userRepo, publisher, log)

	// Handlers
	businessHandler := handlers.NewBusinessHandler(companyService, promoService, log)
	userHandler := handlers.NewUserHandler(userService, engagementService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := apperr.StatusCode(err)
			message := err.Error()
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				log.Error("request failed", zap.Error(err))
				message = "internal server error"
			}
			return c.Status(code).JSON(dto.NewError(message))
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, whitelist, businessHandler, userHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
