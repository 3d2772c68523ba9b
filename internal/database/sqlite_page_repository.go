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
var _ interfaces.PageRepository = (*sqlitePageRepository)(nil)

const pageRepoName = "page"

const (
	createPageQuery = `
INSERT INTO pages (story_id, name, content)
VALUES (?, ?, '')
RETURNING id`

	getPageByIDQuery = `
SELECT id, story_id, name, content
FROM pages
WHERE id = ?`

	listPagesByStoryQuery = `
SELECT id, story_id, name, content
FROM pages
WHERE story_id = ?
ORDER BY id`
)

type sqlitePageRepository struct {
	logger *zap.Logger
}

func NewSqlitePageRepository(logger *zap.Logger) interfaces.PageRepository {
	return &sqlitePageRepository{
		logger: logger.Named("SqlitePageRepo"),
	}
}

// Create inserts a page with an empty body. The story's existence is left to
// the foreign key.
func (r *sqlitePageRepository) Create(ctx context.Context, querier interfaces.DBTX, storyID int64, name string) (id int64, err error) {
	defer observe(pageRepoName, "create", time.Now(), &err)

	logFields := []zap.Field{zap.Int64("storyID", storyID), zap.String("name", name)}
	if err = querier.QueryRowContext(ctx, createPageQuery, storyID, name).Scan(&id); err != nil {
		r.logger.Error("Failed to create page", append(logFields, zap.Error(err))...)
		return 0, fmt.Errorf("%w: failed to create page in story %d: %w", models.ErrStorage, storyID, err)
	}
	r.logger.Info("Page created", append(logFields, zap.Int64("pageID", id))...)
	return id, nil
}

// GetByID retrieves a page row by id.
func (r *sqlitePageRepository) GetByID(ctx context.Context, querier interfaces.DBTX, id int64) (_ *models.Page, err error) {
	defer observe(pageRepoName, "get", time.Now(), &err)

	logFields := []zap.Field{zap.Int64("pageID", id)}
	page := &models.Page{}
	if err = sqlscan.Get(ctx, querier, page, getPageByIDQuery, id); err != nil {
		if sqlscan.NotFound(err) {
			r.logger.Warn("Page not found by ID", logFields...)
			return nil, fmt.Errorf("page %d: %w", id, models.ErrNotFound)
		}
		r.logger.Error("Failed to get page by ID", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("%w: failed to get page %d: %w", models.ErrStorage, id, err)
	}
	page.Options = []models.Choice{}
	r.logger.Debug("Page retrieved", logFields...)
	return page, nil
}

// ListByStory returns the pages of a story ordered by id.
func (r *sqlitePageRepository) ListByStory(ctx context.Context, querier interfaces.DBTX, storyID int64) (pages []models.Page, err error) {
	defer observe(pageRepoName, "list_by_story", time.Now(), &err)

	logFields := []zap.Field{zap.Int64("storyID", storyID)}
	pages = make([]models.Page, 0)
	if err = sqlscan.Select(ctx, querier, &pages, listPagesByStoryQuery, storyID); err != nil {
		r.logger.Error("Failed to list pages of story", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("%w: failed to list pages of story %d: %w", models.ErrStorage, storyID, err)
	}
	r.logger.Debug("Pages listed", append(logFields, zap.Int("count", len(pages)))...)
	return pages, nil
}

// Patch writes only the fields present in patch.
// Если нечего обновлять, запрос не выполняется и возвращается ErrInvalidArgument.
func (r *sqlitePageRepository) Patch(ctx context.Context, querier interfaces.DBTX, id int64, patch models.PagePatch) (rows int64, err error) {
	defer observe(pageRepoName, "patch", time.Now(), &err)

	logFields := []zap.Field{zap.Int64("pageID", id), zap.Bool("name", patch.Name != nil), zap.Bool("body", patch.Body != nil)}

	query, args, err := buildPagePatchQuery(id, patch)
	if err != nil {
		r.logger.Warn("Rejected empty page patch", logFields...)
		return 0, err
	}

	r.logger.Debug("Executing page patch", append(logFields, zap.String("query", query))...)
	res, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to patch page", append(logFields, zap.Error(err))...)
		return 0, fmt.Errorf("%w: failed to patch page %d: %w", models.ErrStorage, id, err)
	}
	if rows, err = requireAffected(res, "page", id); err != nil {
		r.logger.Warn("Attempted to patch non-existent page", logFields...)
		return 0, err
	}

	r.logger.Info("Page patched", logFields...)
	return rows, nil
}
