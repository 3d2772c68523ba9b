package interfaces

import (
	"context"

	"story-editor/internal/models"
)

// ChoiceRepository defines access to the choices table.
//
//go:generate mockery --name ChoiceRepository --output ./mocks --outpkg mocks --case=underscore
type ChoiceRepository interface {
	// ListByPage returns the choices of a page in insertion order. Never nil.
	ListByPage(ctx context.Context, querier DBTX, pageID int64) ([]models.Choice, error)

	// Create inserts the choice and sets choice.ID.
	Create(ctx context.Context, querier DBTX, choice *models.Choice) error
}
