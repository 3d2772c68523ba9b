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
var _ interfaces.StoryRepository = (*sqliteStoryRepository)(nil)

const storyRepoName = "story"

const (
	listStoriesQuery = `SELECT id, title FROM stories ORDER BY id`

	createStoryQuery = `
INSERT INTO stories (title, created_at)
VALUES (?, CURRENT_TIMESTAMP)
RETURNING id`

	getStoryByIDQuery = `
SELECT id, title, start_page, created_at
FROM stories
WHERE id = ?`

	setStoryStartPageQuery = `UPDATE stories SET start_page = ? WHERE id = ?`

	deleteStoryQuery = `DELETE FROM stories WHERE id = ?`
)

type sqliteStoryRepository struct {
	logger *zap.Logger
}

func NewSqliteStoryRepository(logger *zap.Logger) interfaces.StoryRepository {
	return &sqliteStoryRepository{
		logger: logger.Named("SqliteStoryRepo"),
	}
}

// List returns every story as a lightweight listing.
func (r *sqliteStoryRepository) List(ctx context.Context, querier interfaces.DBTX) (listings []models.StoryListing, err error) {
	defer observe(storyRepoName, "list", time.Now(), &err)

	listings = make([]models.StoryListing, 0)
	if err = sqlscan.Select(ctx, querier, &listings, listStoriesQuery); err != nil {
		r.logger.Error("Failed to list stories", zap.Error(err))
		return nil, fmt.Errorf("%w: failed to list stories: %w", models.ErrStorage, err)
	}
	r.logger.Debug("Stories listed", zap.Int("count", len(listings)))
	return listings, nil
}

// Create inserts a new story row. The start page is attached separately.
func (r *sqliteStoryRepository) Create(ctx context.Context, querier interfaces.DBTX, title string) (id int64, err error) {
	defer observe(storyRepoName, "create", time.Now(), &err)

	if err = querier.QueryRowContext(ctx, createStoryQuery, title).Scan(&id); err != nil {
		r.logger.Error("Failed to create story", zap.Error(err), zap.String("title", title))
		return 0, fmt.Errorf("%w: failed to create story: %w", models.ErrStorage, err)
	}
	r.logger.Info("Story created", zap.Int64("storyID", id))
	return id, nil
}

// GetByID retrieves a story row by id.
func (r *sqliteStoryRepository) GetByID(ctx context.Context, querier interfaces.DBTX, id int64) (_ *models.Story, err error) {
	defer observe(storyRepoName, "get", time.Now(), &err)

	logFields := []zap.Field{zap.Int64("storyID", id)}
	story := &models.Story{}
	if err = sqlscan.Get(ctx, querier, story, getStoryByIDQuery, id); err != nil {
		if sqlscan.NotFound(err) {
			r.logger.Warn("Story not found by ID", logFields...)
			return nil, fmt.Errorf("story %d: %w", id, models.ErrNotFound)
		}
		r.logger.Error("Failed to get story by ID", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("%w: failed to get story %d: %w", models.ErrStorage, id, err)
	}
	r.logger.Debug("Story retrieved", logFields...)
	return story, nil
}

// SetStartPage points a story at its start page.
func (r *sqliteStoryRepository) SetStartPage(ctx context.Context, querier interfaces.DBTX, storyID, pageID int64) (err error) {
	defer observe(storyRepoName, "set_start_page", time.Now(), &err)

	logFields := []zap.Field{zap.Int64("storyID", storyID), zap.Int64("pageID", pageID)}
	res, err := querier.ExecContext(ctx, setStoryStartPageQuery, pageID, storyID)
	if err != nil {
		r.logger.Error("Failed to set story start page", append(logFields, zap.Error(err))...)
		return fmt.Errorf("%w: failed to set start page of story %d: %w", models.ErrStorage, storyID, err)
	}
	if _, err = requireAffected(res, "story", storyID); err != nil {
		r.logger.Warn("Attempted to set start page of non-existent story", logFields...)
		return err
	}
	r.logger.Debug("Story start page set", logFields...)
	return nil
}

// Delete removes a story. Pages and choices go with it through ON DELETE CASCADE.
func (r *sqliteStoryRepository) Delete(ctx context.Context, querier interfaces.DBTX, id int64) (err error) {
	defer observe(storyRepoName, "delete", time.Now(), &err)

	logFields := []zap.Field{zap.Int64("storyID", id)}
	res, err := querier.ExecContext(ctx, deleteStoryQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete story", append(logFields, zap.Error(err))...)
		return fmt.Errorf("%w: failed to delete story %d: %w", models.ErrStorage, id, err)
	}
	if _, err = requireAffected(res, "story", id); err != nil {
		r.logger.Warn("Attempted to delete non-existent story", logFields...)
		return err
	}
	r.logger.Info("Story deleted", logFields...)
	return nil
}
