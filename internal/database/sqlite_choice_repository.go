package database

import (
	"context"
	"fmt"
	"time"

	"story-editor/internal/interfaces"
	"story-editor/internal/models"

	"github.com/georgysavva/scany/v2/sqlscan"
	"go.uber.org/zap"
)

// Compile-time check to ensure implementation satisfies the interface.
var _ interfaces.ChoiceRepository = (*sqliteChoiceRepository)(nil)

const choiceRepoName = "choice"

const (
	listChoicesByPageQuery = `
SELECT id, page_id, text, target_page_id
FROM choices
WHERE page_id = ?
ORDER BY id`

	createChoiceQuery = `
INSERT INTO choices (page_id, text, target_page_id)
VALUES (?, ?, ?)
RETURNING id`
)

type sqliteChoiceRepository struct {
	logger *zap.Logger
}

func NewSqliteChoiceRepository(logger *zap.Logger) interfaces.ChoiceRepository {
	return &sqliteChoiceRepository{
		logger: logger.Named("SqliteChoiceRepo"),
	}
}

// ListByPage returns the choices of a page in insertion order.
func (r *sqliteChoiceRepository) ListByPage(ctx context.Context, querier interfaces.DBTX, pageID int64) (choices []models.Choice, err error) {
	defer observe(choiceRepoName, "list_by_page", time.Now(), &err)

	logFields := []zap.Field{zap.Int64("pageID", pageID)}
	choices = make([]models.Choice, 0)
	if err = sqlscan.Select(ctx, querier, &choices, listChoicesByPageQuery, pageID); err != nil {
		r.logger.Error("Failed to list choices of page", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("%w: failed to list choices of page %d: %w", models.ErrStorage, pageID, err)
	}
	r.logger.Debug("Choices listed", append(logFields, zap.Int("count", len(choices)))...)
	return choices, nil
}

// Create inserts a choice. Both page ids are checked by foreign keys only.
func (r *sqliteChoiceRepository) Create(ctx context.Context, querier interfaces.DBTX, choice *models.Choice) (err error) {
	defer observe(choiceRepoName, "create", time.Now(), &err)

	logFields := []zap.Field{zap.Int64("pageID", choice.PageID), zap.Int64("targetPageID", choice.TargetPage)}
	if err = querier.QueryRowContext(ctx, createChoiceQuery, choice.PageID, choice.Text, choice.TargetPage).Scan(&choice.ID); err != nil {
		r.logger.Error("Failed to create choice", append(logFields, zap.Error(err))...)
		return fmt.Errorf("%w: failed to create choice on page %d: %w", models.ErrStorage, choice.PageID, err)
	}
	r.logger.Info("Choice created", append(logFields, zap.Int64("choiceID", choice.ID))...)
	return nil
}
