package interfaces

import (
	"context"

	"story-editor/internal/models"
)

// StoryRepository defines access to the stories table.
//
//go:generate mockery --name StoryRepository --output ./mocks --outpkg mocks --case=underscore
type StoryRepository interface {
	// List returns a listing of every story ordered by id. Never nil.
	List(ctx context.Context, querier DBTX) ([]models.StoryListing, error)

	// Create inserts a story with the given title and returns its id.
	// start_page stays NULL until SetStartPage is called.
	Create(ctx context.Context, querier DBTX, title string) (int64, error)

	// GetByID returns the story row without pages. models.ErrNotFound if absent.
	GetByID(ctx context.Context, querier DBTX, id int64) (*models.Story, error)

	// SetStartPage points the story at its start page.
	SetStartPage(ctx context.Context, querier DBTX, storyID, pageID int64) error

	// Delete removes the story. models.ErrNotFound if nothing was deleted.
	Delete(ctx context.Context, querier DBTX, id int64) error
}
