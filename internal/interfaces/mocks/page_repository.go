package mocks

import (
	"context"

	"story-editor/internal/interfaces"
	"story-editor/internal/models"

	"github.com/stretchr/testify/mock"
)

// PageRepository is a testify mock of interfaces.PageRepository.
type PageRepository struct {
	mock.Mock
}

var _ interfaces.PageRepository = (*PageRepository)(nil)

func (m *PageRepository) Create(ctx context.Context, querier interfaces.DBTX, storyID int64, name string) (int64, error) {
	args := m.Called(ctx, querier, storyID, name)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *PageRepository) GetByID(ctx context.Context, querier interfaces.DBTX, id int64) (*models.Page, error) {
	args := m.Called(ctx, querier, id)
	page, _ := args.Get(0).(*models.Page)
	return page, args.Error(1)
}

func (m *PageRepository) ListByStory(ctx context.Context, querier interfaces.DBTX, storyID int64) ([]models.Page, error) {
	args := m.Called(ctx, querier, storyID)
	pages, _ := args.Get(0).([]models.Page)
	return pages, args.Error(1)
}

func (m *PageRepository) Patch(ctx context.Context, querier interfaces.DBTX, id int64, patch models.PagePatch) (int64, error) {
	args := m.Called(ctx, querier, id, patch)
	rows, _ := args.Get(0).(int64)
	return rows, args.Error(1)
}
