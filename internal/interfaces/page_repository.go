package interfaces

import (
	"context"

	"story-editor/internal/models"
)

// PageRepository defines access to the pages table.
//
//go:generate mockery --name PageRepository --output ./mocks --outpkg mocks --case=underscore
type PageRepository interface {
	// Create inserts a page with an empty body under storyID and returns its id.
	Create(ctx context.Context, querier DBTX, storyID int64, name string) (int64, error)

	// GetByID returns the page row without choices. models.ErrNotFound if absent.
	GetByID(ctx context.Context, querier DBTX, id int64) (*models.Page, error)

	// ListByStory returns every page of the story ordered by id ascending.
	ListByStory(ctx context.Context, querier DBTX, storyID int64) ([]models.Page, error)

	// Patch writes only the fields present in patch and returns the number of rows affected.
	// An empty patch fails with models.ErrInvalidArgument, a missing page with models.ErrNotFound.
	Patch(ctx context.Context, querier DBTX, id int64, patch models.PagePatch) (int64, error)
}
