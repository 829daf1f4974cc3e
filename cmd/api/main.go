package main

import (
	"os"
	"os/signal"
	"syscall"

	"bakery-backoffice/internal/config"
	"bakery-backoffice/internal/handler"
	"bakery-backoffice/internal/middleware"
	"bakery-backoffice/internal/repository"
	"bakery-backoffice/internal/service"
	"bakery-backoffice/internal/ws"
	"bakery-backoffice/pkg/cache"
	"bakery-backoffice/pkg/database"
	"bakery-backoffice/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Load config and logger
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// 2. Database, schema and reserved admin
	db := database.ConnectDB(cfg.DSN())
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	userService := service.NewUserService(db)
	if _, err := userService.Bootstrap(); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap reserved admin")
	}

	// 3. Optional redis for the token limiter
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		client, err := cache.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, token rate limit disabled")
		} else {
			rdb = client
			defer rdb.Close()
		}
	}

	// 4. WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Wiring
	services := handler.Services{
		Inventory:  service.NewInventoryService(db, wsHub),
		Production: service.NewProductionService(db),
		Sales:      service.NewSalesService(db, wsHub),
		Users:      userService,
		Audit:      service.NewAuditService(repository.NewAuditRepo(db), repository.NewUserRepo(db)),
		Auth:       service.NewAuthService(db, cfg.JWTSecret),
	}

	// 6. Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New())

	handler.RegisterRoutes(app.Group("/api"), services, handler.RouteOptions{
		Redis:          rdb,
		TokenRateLimit: cfg.TokenRateLimit,
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Handler()))

	// 7. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic().Err(err).Msg("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
