// @title MCQ Quiz API
// @version 1.0
// @description Generates multiple-choice quizzes with a language model and runs quiz sessions.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"mcq-quiz/internal/adapter"
	"mcq-quiz/internal/adapter/quizgen"
	"mcq-quiz/internal/cache"
	"mcq-quiz/internal/config"
	"mcq-quiz/internal/domain"
	"mcq-quiz/internal/handler"
	"mcq-quiz/internal/logger"
	"mcq-quiz/internal/middleware"
	"mcq-quiz/internal/monitoring"
	"mcq-quiz/internal/service"
	"mcq-quiz/internal/validation"

	_ "mcq-quiz/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	monitoring.Init()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// Language model
	llm, err := quizgen.NewModel(rootCtx, cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	appLogger.Info("LLM client initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", quizgen.ModelName(cfg.LLM)))

	llmSource, err := quizgen.NewLLMQuestionSource(llm, cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create question source", zap.Error(err))
	}

	// Initialize Redis Client
	cacheAdapter, closeCache, err := openCache(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer closeCache()
	if cacheAdapter != nil {
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	} else {
		appLogger.Warn("Redis disabled, sessions are kept in memory")
	}

	generationTTL := cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Generation, 0)
	var source domain.QuestionSource = llmSource
	source = quizgen.NewCachedQuestionSource(source, cacheAdapter, generationTTL,
		cfg.LLM.Provider+"_"+quizgen.ModelName(cfg.LLM))
	if generationTTL > 0 {
		appLogger.Info("Generated quiz cache enabled", zap.Duration("ttl", generationTTL))
	}

	sessionTTL := cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Session, 2*time.Hour)
	sessionStore := service.NewCacheSessionStore(cacheAdapter, sessionTTL)

	// Initialize services
	quizService := service.NewQuizService(source, sessionStore)

	// Initialize handlers
	validator := validation.NewValidator(cfg.Quiz)
	quizHandler := handler.NewQuizHandler(quizService, validator)
	healthHandler := handler.NewHealthHandler(cacheAdapter)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(monitoring.MetricsMiddleware())
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", monitoring.PrometheusHandler())

	handler.RegisterRoutes(app, quizHandler, healthHandler,
		middleware.NewValidationMiddleware(validator),
		middleware.RateLimiter(rootCtx, cfg.RateLimit))

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

// openCache connects to Redis. An empty address disables the cache and
// yields a nil domain.Cache.
func openCache(redisCfg config.RedisConfig) (domain.Cache, func(), error) {
	if redisCfg.Address == "" {
		return nil, func() {}, nil
	}
	client, err := cache.NewRedisClient(redisCfg)
	if err != nil {
		return nil, nil, err
	}
	return adapter.NewRedisCacheAdapter(client), func() { _ = client.Close() }, nil
}
