package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"novelforge-server/internal/config"
	"novelforge-server/internal/database"
	delivery "novelforge-server/internal/delivery/http"
	"novelforge-server/internal/logger"
	"novelforge-server/internal/repository"
	"novelforge-server/internal/security"
	"novelforge-server/internal/service"
)

func main() {
	// .env удобен при локальной разработке, в контейнере его может не быть
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: "json"})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.ApplyMigrations(pool, zapLogger); err != nil {
		zapLogger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	guard, err := security.NewGuard(cfg.SecretKey)
	if err != nil {
		zapLogger.Fatal("Failed to init credential guard", zap.Error(err))
	}

	projects := repository.NewProjectRepository(pool, zapLogger)
	outlines := repository.NewOutlineRepository(pool, zapLogger)
	characters := repository.NewCharacterRepository(pool, zapLogger)
	conversations := repository.NewConversationRepository(pool, zapLogger)
	worldviews := repository.NewWorldviewRepository(pool, zapLogger)
	writingStyles := repository.NewWritingStyleRepository(pool, zapLogger)
	promptTemplates := repository.NewPromptTemplateRepository(pool, zapLogger)
	generatedOutlines := repository.NewGeneratedOutlineRepository(pool, zapLogger)
	aiModels := repository.NewAIModelRepository(pool, guard, zapLogger)
	promptPresets := repository.NewPromptPresetRepository(pool, zapLogger)

	relay := service.NewRelay(cfg.AITimeout, zapLogger)
	aiService := service.NewAIService(projects, worldviews, writingStyles, aiModels, relay, zapLogger)

	handler := delivery.NewHandler(delivery.Deps{
		Projects:          projects,
		Outlines:          outlines,
		Characters:        characters,
		Conversations:     conversations,
		Worldviews:        worldviews,
		WritingStyles:     writingStyles,
		PromptTemplates:   promptTemplates,
		GeneratedOutlines: generatedOutlines,
		AIModels:          aiModels,
		PromptPresets:     promptPresets,
		AI:                aiService,
		Logger:            zapLogger,
	})

	router := delivery.NewRouter(handler, cfg.BasePath, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: cfg.ReadTimeout,
		// WriteTimeout не задается: SSE-эндпоинты держат соединение
		// дольше любого фиксированного лимита записи
		IdleTimeout: cfg.IdleTimeout,
	}

	go func() {
		zapLogger.Info("Starting server", zap.String("addr", server.Addr), zap.String("base_path", cfg.BasePath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server shutdown failed", zap.Error(err))
	}
	zapLogger.Info("Server stopped")
}
