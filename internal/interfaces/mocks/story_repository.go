package mocks

import (
	"context"

	"story-editor/internal/interfaces"
	"story-editor/internal/models"

	"github.com/stretchr/testify/mock"
)

// StoryRepository is a testify mock of interfaces.StoryRepository.
type StoryRepository struct {
	mock.Mock
}

var _ interfaces.StoryRepository = (*StoryRepository)(nil)

func (m *StoryRepository) List(ctx context.Context, querier interfaces.DBTX) ([]models.StoryListing, error) {
	args := m.Called(ctx, querier)
	listings, _ := args.Get(0).([]models.StoryListing)
	return listings, args.Error(1)
}

func (m *StoryRepository) Create(ctx context.Context, querier interfaces.DBTX, title string) (int64, error) {
	args := m.Called(ctx, querier, title)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *StoryRepository) GetByID(ctx context.Context, querier interfaces.DBTX, id int64) (*models.Story, error) {
	args := m.Called(ctx, querier, id)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}

func (m *StoryRepository) SetStartPage(ctx context.Context, querier interfaces.DBTX, storyID, pageID int64) error {
	args := m.Called(ctx, querier, storyID, pageID)
	return args.Error(0)
}

func (m *StoryRepository) Delete(ctx context.Context, querier interfaces.DBTX, id int64) error {
	args := m.Called(ctx, querier, id)
	return args.Error(0)
}
