package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yourusername/shop-assistant/config"
	httpdelivery "github.com/yourusername/shop-assistant/internal/delivery/http"
	"github.com/yourusername/shop-assistant/internal/delivery/telegram"
	"github.com/yourusername/shop-assistant/internal/domain/repository"
	"github.com/yourusername/shop-assistant/internal/infrastructure/gemini"
	"github.com/yourusername/shop-assistant/internal/infrastructure/idgen"
	"github.com/yourusername/shop-assistant/internal/infrastructure/parser"
	"github.com/yourusername/shop-assistant/internal/infrastructure/storage"
	"github.com/yourusername/shop-assistant/internal/usecase"
	"github.com/yourusername/shop-assistant/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(logger.Config{Debug: cfg.Log.Debug, Pretty: cfg.Log.Pretty})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ids := idgen.NewUUIDGenerator()

	// Katalog: Excel fayl berilgan bo'lsa undan, aks holda seed
	catalogRepo := storage.NewMemoryCatalogRepository(storage.SeedCatalog(ids))
	productUseCase := usecase.NewProductUseCase(catalogRepo, parser.NewExcelParser(ids))
	if cfg.CatalogXLSXPath != "" {
		count, err := productUseCase.ImportCatalog(ctx, cfg.CatalogXLSXPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.CatalogXLSXPath).Msg("failed to import catalog")
		}
		log.Info().Int("products", count).Msg("catalog loaded from excel")
	}

	categories, err := catalogRepo.Categories(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list categories")
	}

	sessionRepo, closeSessions, err := newSessionRepository(cfg.SessionDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}
	defer closeSessions()

	aiRepo, closeAI, err := gemini.NewGeminiClient(ctx, gemini.Config{
		APIKey:          cfg.Gemini.APIKey,
		Model:           cfg.Gemini.Model,
		Temperature:     cfg.Gemini.Temperature,
		TopP:            cfg.Gemini.TopP,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
		Timeout:         cfg.GenerationTimeout,
		MaxRetries:      cfg.Gemini.MaxRetries,
	}, catalogRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create gemini client")
	}
	defer closeAI()

	sessions := usecase.NewSessionManager(sessionRepo, usecase.BuildPrimer(categories), cfg.MaxTranscriptTurns)
	chatUseCase := usecase.NewChatUseCase(sessions, aiRepo, catalogRepo)
	checkoutUseCase := usecase.NewCheckoutUseCase(sessions, ids)

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBotHandler(cfg.TelegramToken, cfg.TelegramAdminIDs, chatUseCase, checkoutUseCase, productUseCase)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create telegram bot")
		}
		go func() {
			if err := bot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("telegram bot stopped")
			}
		}()
	}

	handler := httpdelivery.NewHandler(chatUseCase, checkoutUseCase, productUseCase, cfg.CORSAllowedOrigins)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.GenerationTimeout + 10*time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("addr", srv.Addr).Strs("categories", categories).Msg("server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server failed")
		stop()
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

// newSessionRepository SESSION_DB_PATH bo'sh bo'lsa xotirada
func newSessionRepository(dbPath string) (repository.SessionRepository, func() error, error) {
	if dbPath == "" {
		return storage.NewMemorySessionRepository(), func() error { return nil }, nil
	}
	return storage.NewSQLiteSessionRepository(dbPath)
}
