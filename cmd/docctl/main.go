package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/config"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/repository/documentrepo"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/transaction"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/logger"
)

var version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// serviceFactory opens the document service used by every subcommand.
type serviceFactory func(ctx context.Context) (document.Service, func(), error)

func newRootCmd() *cobra.Command {
	return newRootCmdWith(openDocumentService)
}

func newRootCmdWith(open serviceFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "docctl",
		Short: "Manage documents used for grounded conversations",
		Long: `docctl ingests and inspects the reference documents that RAG
conversations are grounded on. It talks to the database configured by
DATABASE_URL.

Examples:
  docctl create --filename faq.txt --file ./faq.txt
  docctl create --filename note.txt --content "Refunds take 30 days."
  docctl import manifest.yaml
  docctl list --page 2`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCreateCmd(open))
	root.AddCommand(newImportCmd(open))
	root.AddCommand(newListCmd(open))
	return root
}

func openDocumentService(ctx context.Context) (document.Service, func(), error) {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg)

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    1,
		MaxOpenConns:    2,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Error,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	cleanup := func() { _ = database.Close(db) }

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db, log); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	repo := documentrepo.NewDocumentGormRepository(transaction.NewDatabase(db))
	return document.NewService(repo, cfg.ChunkSize, log), cleanup, nil
}

func loadEnvFiles() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
