package database

import (
	"context"
	"database/sql"
	"fmt"

	"story-editor/internal/interfaces"
	"story-editor/internal/models"

	"go.uber.org/zap"
)

var _ interfaces.TxManager = (*TransactionHelper)(nil)

// TransactionHelper предоставляет унифицированные методы для работы с транзакциями
type TransactionHelper struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTransactionHelper создает новый помощник транзакций
func NewTransactionHelper(db *sql.DB, logger *zap.Logger) *TransactionHelper {
	return &TransactionHelper{
		db:     db,
		logger: logger.Named("TxHelper"),
	}
}

// WithTransaction выполняет функцию в транзакции с автоматическим rollback при ошибке
func (h *TransactionHelper) WithTransaction(
	ctx context.Context,
	fn func(ctx context.Context, tx interfaces.DBTX) error,
) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", models.ErrStorage, err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				h.logger.Error("Failed to rollback transaction after panic",
					zap.Error(rollbackErr),
					zap.Any("panic", p))
			}
			panic(p) // re-throw panic after rollback
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			h.logger.Error("Failed to rollback transaction",
				zap.Error(rollbackErr),
				zap.NamedError("original_error", err))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", models.ErrStorage, err)
	}

	return nil
}
