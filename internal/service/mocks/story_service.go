package mocks

import (
	"context"

	"story-editor/internal/models"
	"story-editor/internal/service"

	"github.com/stretchr/testify/mock"
)

// StoryService is a testify mock of service.StoryService.
type StoryService struct {
	mock.Mock
}

var _ service.StoryService = (*StoryService)(nil)

func (m *StoryService) ListStories(ctx context.Context) ([]models.StoryListing, error) {
	args := m.Called(ctx)
	listings, _ := args.Get(0).([]models.StoryListing)
	return listings, args.Error(1)
}

func (m *StoryService) GetStory(ctx context.Context, id int64) (*models.Story, error) {
	args := m.Called(ctx, id)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}

func (m *StoryService) AddStory(ctx context.Context, title string) (int64, error) {
	args := m.Called(ctx, title)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *StoryService) DeleteStory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *StoryService) GetPage(ctx context.Context, id int64) (*models.Page, error) {
	args := m.Called(ctx, id)
	page, _ := args.Get(0).(*models.Page)
	return page, args.Error(1)
}

func (m *StoryService) PatchPage(ctx context.Context, id int64, patch models.PagePatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *StoryService) CreatePage(ctx context.Context, storyID int64, name string) (int64, error) {
	args := m.Called(ctx, storyID, name)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *StoryService) CreateChoice(ctx context.Context, pageID, targetPageID int64, text string) (*models.Choice, error) {
	args := m.Called(ctx, pageID, targetPageID, text)
	choice, _ := args.Get(0).(*models.Choice)
	return choice, args.Error(1)
}
