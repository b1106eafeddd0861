//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/config"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/generation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/retrieval"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/user"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/auth"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/repository/conversationrepo"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/repository/documentrepo"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/repository/userrepo"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/transaction"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/logger"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver/middlewares"
)

var repositorySet = wire.NewSet(
	transaction.NewDatabase,
	conversationrepo.NewConversationGormRepository,
	wire.Bind(new(conversation.Repository), new(*conversationrepo.ConversationGormRepository)),
	wire.Bind(new(generation.MessageStore), new(*conversationrepo.ConversationGormRepository)),
	documentrepo.NewDocumentGormRepository,
	wire.Bind(new(document.Repository), new(*documentrepo.DocumentGormRepository)),
	wire.Bind(new(retrieval.DocumentSource), new(*documentrepo.DocumentGormRepository)),
	userrepo.NewUserGormRepository,
	wire.Bind(new(user.Repository), new(*userrepo.UserGormRepository)),
)

var domainSet = wire.NewSet(
	newRetriever,
	wire.Bind(new(generation.ContextRetriever), new(*retrieval.Retriever)),
	newLLMClient,
	newOrchestrator,
	wire.Bind(new(conversation.ReplyGenerator), new(*generation.Orchestrator)),
	newLocker,
	conversation.NewService,
	newDocumentService,
	newUserResolver,
	wire.Bind(new(middlewares.UserResolver), new(*user.Resolver)),
)

// BuildApplication assembles the same graph as main with Wire.
func BuildApplication(ctx context.Context) (*Application, func(), error) {
	wire.Build(
		newConfig,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		newAuthValidator,
		repositorySet,
		domainSet,
		newDependencies,
		httpserver.New,
		NewApplication,
	)
	return nil, nil, nil
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, func(), error) {
	validator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return validator, validator.Close, nil
}

func newDependencies(
	conversations conversation.Service,
	documents document.Service,
	users middlewares.UserResolver,
	validator *auth.Validator,
	db *gorm.DB,
) httpserver.Dependencies {
	return httpserver.Dependencies{
		Conversations: conversations,
		Documents:     documents,
		Users:         users,
		Auth:          validator,
		Ready:         readiness(db),
	}
}
