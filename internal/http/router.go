package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/promo-platform/backend/internal/auth"
	"github.com/promo-platform/backend/internal/config"
	"github.com/promo-platform/backend/internal/http/handlers"
	"github.com/promo-platform/backend/internal/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	whitelist *auth.Whitelist,
	businessHandler *handlers.BusinessHandler,
	userHandler *handlers.UserHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	api := app.Group("/api")

	api.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"result": "ok"})
	})

	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Company-facing surface
	business := api.Group("/business")
	business.Post("/auth/sign-up", businessHandler.SignUp)
	business.Post("/auth/sign-in", businessHandler.SignIn)

	companyAuth := business.Group("", middleware.AuthMiddleware(cfg, whitelist, auth.EntityCompany, log))
	companyAuth.Post("/promo", businessHandler.CreatePromo)
	companyAuth.Get("/promo", businessHandler.ListPromos)
	companyAuth.Get("/promo/:id", businessHandler.GetPromo)
	companyAuth.Patch("/promo/:id", businessHandler.PatchPromo)

	// User-facing surface
	user := api.Group("/user")
	user.Post("/auth/sign-up", userHandler.SignUp)
	user.Post("/auth/sign-in", userHandler.SignIn)

	userAuth := user.Group("", middleware.AuthMiddleware(cfg, whitelist, auth.EntityUser, log))
	userAuth.Get("/profile", userHandler.GetProfile)
	userAuth.Patch("/profile", userHandler.PatchProfile)
	userAuth.Get("/feed", userHandler.Feed)
	userAuth.Get("/promo/:id", userHandler.GetPromo)
	userAuth.Post("/promo/:id/activate", userHandler.ActivatePromo)
	userAuth.Post("/promo/:id/like", userHandler.LikePromo)
	userAuth.Delete("/promo/:id/like", userHandler.UnlikePromo)
	userAuth.Post("/promo/:id/comments", userHandler.AddComment)
	userAuth.Get("/promo/:id/comments", userHandler.ListComments)
	userAuth.Get("/promo/:id/comments/:comment_id", userHandler.GetComment)
	userAuth.Put("/promo/:id/comments/:comment_id", userHandler.ReplaceComment)
	userAuth.Delete("/promo/:id/comments/:comment_id", userHandler.DeleteComment)

	// Live engagement feed
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
