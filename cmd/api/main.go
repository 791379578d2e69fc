package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/carelingo/backend/internal/api/handlers"
	redisCache "github.com/carelingo/backend/internal/cache/redis"
	"github.com/carelingo/backend/internal/chat"
	"github.com/carelingo/backend/internal/faq"
	"github.com/carelingo/backend/internal/metrics"
	"github.com/carelingo/backend/internal/middleware/ratelimit"
	"github.com/carelingo/backend/internal/middleware/security"
	"github.com/carelingo/backend/internal/middleware/validation"
	"github.com/carelingo/backend/internal/storage/sqlite"
	"github.com/carelingo/backend/internal/translation"
	"github.com/carelingo/backend/pkg/config"
	appLogger "github.com/carelingo/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting multilingual healthcare chatbot API")

	metrics.Init()

	sqliteClient, err := sqlite.NewClient(cfg.SQLite.Path)
	if err != nil {
		appLogger.Fatal("Failed to create SQLite client", zap.Error(err))
	}
	defer sqliteClient.Close()

	err = sqliteClient.InitSchema()
	if err != nil {
		appLogger.Fatal("Failed to initialize schema", zap.Error(err))
	}

	entries := faq.DefaultCorpus()
	if cfg.FAQ.CorpusPath != "" {
		entries, err = faq.LoadCorpus(cfg.FAQ.CorpusPath)
		if err != nil {
			appLogger.Fatal("Failed to load FAQ corpus", zap.Error(err))
		}
	}

	matcher, err := faq.NewMatcher(entries, cfg.FAQ.ConfidenceThreshold, appLogger.GetLogger())
	if err != nil {
		appLogger.Fatal("Failed to build FAQ matcher", zap.Error(err))
	}

	translator := buildTranslator(cfg)

	chatService := chat.NewService(translator, matcher, sqliteClient, appLogger.GetLogger())

	liveHandler := handlers.NewLiveHandler()
	chatService.SetObserver(liveHandler)

	chatHandler := handlers.NewChatHandler(chatService)
	statsHandler := handlers.NewStatsHandler(sqliteClient)
	faqHandler := handlers.NewFAQHandler(entries)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(security.HeadersMiddleware(security.HeadersConfig{
		IsDevelopment: cfg.Logging.Level == "debug",
	}))

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Logger:               appLogger.GetLogger(),
	})
	defer limiter.Stop()

	api := app.Group("/api", limiter.Middleware())

	api.Post("/chat", validation.Middleware(validation.Config{
		MaxMessageLength: 500,
		Logger:           appLogger.GetLogger(),
	}), chatHandler.HandleChat)

	api.Get("/stats", statsHandler.HandleStats)
	api.Get("/history", statsHandler.HandleSessionHistory)
	api.Get("/languages", chatHandler.HandleLanguages)
	api.Get("/faq/categories", faqHandler.HandleCategories)
	api.Get("/faq", faqHandler.HandleEntries)

	api.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		loggingReady := sqliteClient.Ping() == nil
		if !loggingReady {
			status = "degraded"
		}
		return c.JSON(fiber.Map{
			"status": status,
			"time":   time.Now().Unix(),
			"services": fiber.Map{
				"faq":         true,
				"translation": cfg.Translator.Provider,
				"logging":     loggingReady,
			},
		})
	})

	app.Get("/metrics", metrics.Handler())

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/live", websocket.New(liveHandler.HandleConnection))

	app.Static("/", cfg.Server.StaticDir)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}

// buildTranslator wires the configured backend, wrapped in the redis result
// cache when one is configured.
func buildTranslator(cfg *config.Config) translation.Translator {
	var translator translation.Translator

	switch cfg.Translator.Provider {
	case "openai":
		translator = translation.NewOpenAIClient(
			cfg.Translator.APIKey,
			cfg.Translator.Model,
			cfg.Translator.MaxLength,
			appLogger.GetLogger(),
		)
	default:
		translator = translation.NewMarianClient(
			cfg.Translator.Endpoint,
			cfg.Translator.MaxLength,
			cfg.Translator.TimeoutSec,
			appLogger.GetLogger(),
		)
	}

	if cfg.Redis.Enabled {
		cache, err := redisCache.NewClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			appLogger.Warn("Redis unavailable, translation cache disabled", zap.Error(err))
			return translator
		}
		translator = translation.NewCached(
			translator,
			cache,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			appLogger.GetLogger(),
		)
	}

	return translator
}
