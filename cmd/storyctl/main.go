package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"story-editor/internal/cli"
	"story-editor/internal/config"
	"story-editor/internal/database"
	"story-editor/internal/logger"
	"story-editor/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Загрузка переменных окружения, .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "storyctl: warning: could not load .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "storyctl: %v\n", err)
		return cli.ExitCodeUsage
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Encoding:   cfg.LogEncoding,
		OutputPath: cfg.LogOutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "storyctl: %v\n", err)
		return cli.ExitCodeGeneric
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to open database", zap.Error(err))
		return cli.ExitCodeGeneric
	}
	defer database.Close(db, log)

	// Схема создается при каждом запуске; повторное применение ничего не делает
	if err := database.ApplyMigrations(db, log); err != nil {
		log.Error("Failed to apply migrations", zap.Error(err))
		return cli.ExitCodeGeneric
	}

	storyService := service.NewStoryService(
		db,
		database.NewTransactionHelper(db, log),
		database.NewSqliteStoryRepository(log),
		database.NewSqlitePageRepository(log),
		database.NewSqliteChoiceRepository(log),
		cfg.FanoutLimit,
		log,
	)

	cmd := cli.NewRootCommand(os.Stdout, os.Stderr, cli.Deps{
		Service: storyService,
		Migrate: func(context.Context) error {
			return database.ApplyMigrations(db, log)
		},
		DumpMetrics: cfg.MetricsDump,
	})
	if err := cli.Execute(ctx, cmd, os.Stderr, database.Registry); err != nil {
		fmt.Fprintf(os.Stderr, "storyctl: %v\n", err)
		return cli.ExitCodeOf(err)
	}
	return cli.ExitCodeSuccess
}
