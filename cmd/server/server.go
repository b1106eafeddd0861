package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/auth"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/repository/conversationrepo"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/repository/documentrepo"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/repository/userrepo"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/transaction"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/logger"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/observability"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver"
)

// @title BOT GPT API
// @version 1.0.0
// @description Conversational API with open chat and document-grounded replies.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := newConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, closeDB, err := newGormDB(ctx, newDatabaseConfig(cfg), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer closeDB()

	txDB := transaction.NewDatabase(db)
	conversationRepository := conversationrepo.NewConversationGormRepository(txDB)
	documentRepository := documentrepo.NewDocumentGormRepository(txDB)
	userRepository := userrepo.NewUserGormRepository(txDB)

	locker, closeLocker, err := newLocker(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize conversation locker")
	}
	defer closeLocker()

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}
	defer authValidator.Close()

	retriever := newRetriever(documentRepository, cfg, log)
	orchestrator := newOrchestrator(conversationRepository, retriever, newLLMClient(cfg, log), cfg, log)

	conversationService := conversation.NewService(conversationRepository, orchestrator, locker, log)
	documentService := newDocumentService(documentRepository, cfg, log)

	resolver, err := newUserResolver(userRepository, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize user resolver")
	}

	httpServer := httpserver.New(cfg, log, httpserver.Dependencies{
		Conversations: conversationService,
		Documents:     documentService,
		Users:         resolver,
		Auth:          authValidator,
		Ready:         readiness(db),
	})
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		return
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
