package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"story-editor/internal/config"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const driverName = "sqlite"

// Open создает пул соединений к файлу SQLite и проверяет его.
// Ошибка подключения возвращается сразу, а не при первом запросе.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	logger.Info("Connecting to database", zap.String("path", cfg.DBPath), zap.Int("maxConns", cfg.DBMaxConns))

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open(driverName, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxConns)
	db.SetMaxIdleConns(cfg.DBMaxConns)
	db.SetConnMaxIdleTime(cfg.DBIdleTimeout)

	// Проверка соединения
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Successfully connected to database")
	return db, nil
}

// Close закрывает пул соединений
func Close(db *sql.DB, logger *zap.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("Failed to close database", zap.Error(err))
		return
	}
	logger.Info("Database connection closed")
}
