package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/config"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/generation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/llm"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/retrieval"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/user"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/llmprovider"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/lock"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/logger"
)

func newConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	level := gormlogger.Warn
	if strings.EqualFold(cfg.LogLevel, "debug") {
		level = gormlogger.Info
	}
	return database.Config{
		DSN:             cfg.DatabaseURL,
		ReadDSN:         cfg.DatabaseReadURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        level,
	}
}

func newGormDB(ctx context.Context, dbCfg database.Config, cfg *config.Config, log zerolog.Logger) (*gorm.DB, func(), error) {
	db, err := database.Connect(dbCfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db, log); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
	}
	return db, cleanup, nil
}

// newLocker returns a redsync locker when REDIS_URL is set and an in-process
// keyed mutex otherwise.
func newLocker(ctx context.Context, cfg *config.Config, log zerolog.Logger) (conversation.Locker, func(), error) {
	if cfg.RedisURL == "" {
		log.Info().Msg("using in-process conversation locks")
		return lock.NewLocalLocker(), func() {}, nil
	}

	locker, err := lock.NewRedisLocker(ctx, cfg.RedisURL, cfg.LockTTL, log)
	if err != nil {
		return nil, nil, err
	}
	return locker, func() {
		if err := locker.Close(); err != nil {
			log.Error().Err(err).Msg("close redis locker")
		}
	}, nil
}

func newLLMClient(cfg *config.Config, log zerolog.Logger) llm.Client {
	return llmprovider.NewClient(llmprovider.Config{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Timeout: cfg.LLMTimeout,
	}, log)
}

func newRetriever(docs retrieval.DocumentSource, cfg *config.Config, log zerolog.Logger) *retrieval.Retriever {
	return retrieval.NewRetriever(docs, cfg.RAGTopK, log)
}

func newOrchestrator(messages generation.MessageStore, retriever generation.ContextRetriever, client llm.Client, cfg *config.Config, log zerolog.Logger) *generation.Orchestrator {
	return generation.NewOrchestrator(messages, retriever, client, generation.Options{
		Model:             cfg.LLMDefaultModel,
		MaxResponseTokens: cfg.LLMMaxTokens,
		MaxContextTokens:  cfg.LLMMaxContextTokens,
		Temperature:       cfg.LLMTemperature,
		Timeout:           cfg.LLMTimeout,
		Redact:            logger.NewSanitizer(cfg.LogContent, cfg.ServiceName).Content,
	}, log)
}

func newDocumentService(repo document.Repository, cfg *config.Config, log zerolog.Logger) document.Service {
	return document.NewService(repo, cfg.ChunkSize, log)
}

func newUserResolver(repo user.Repository, log zerolog.Logger) (*user.Resolver, error) {
	return user.NewResolver(repo, user.DefaultCacheSize, log)
}

func readiness(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
