package service

import (
	"context"
	"fmt"
	"strings"

	"story-editor/internal/interfaces"
	"story-editor/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoryService is the caller-facing operation surface of the story store.
type StoryService interface {
	ListStories(ctx context.Context) ([]models.StoryListing, error)
	GetStory(ctx context.Context, id int64) (*models.Story, error)
	AddStory(ctx context.Context, title string) (int64, error)
	DeleteStory(ctx context.Context, id int64) error
	GetPage(ctx context.Context, id int64) (*models.Page, error)
	PatchPage(ctx context.Context, id int64, patch models.PagePatch) error
	CreatePage(ctx context.Context, storyID int64, name string) (int64, error)
	CreateChoice(ctx context.Context, pageID, targetPageID int64, text string) (*models.Choice, error)
}

type storyServiceImpl struct {
	db        interfaces.DBTX
	txManager interfaces.TxManager
	stories   interfaces.StoryRepository
	pages     interfaces.PageRepository
	choices   interfaces.ChoiceRepository
	assembler *StoryAssembler
	logger    *zap.Logger
}

// NewStoryService создает сервис историй.
// db используется для одиночных запросов, txManager для многошаговых записей.
func NewStoryService(
	db interfaces.DBTX,
	txManager interfaces.TxManager,
	stories interfaces.StoryRepository,
	pages interfaces.PageRepository,
	choices interfaces.ChoiceRepository,
	fanout int,
	logger *zap.Logger,
) StoryService {
	return &storyServiceImpl{
		db:        db,
		txManager: txManager,
		stories:   stories,
		pages:     pages,
		choices:   choices,
		assembler: NewStoryAssembler(db, stories, pages, choices, fanout, logger),
		logger:    logger.Named("StoryService"),
	}
}

func (s *storyServiceImpl) opLogger(op string) *zap.Logger {
	return s.logger.With(zap.String("op", op), zap.String("op_id", uuid.NewString()))
}

// ListStories returns every story listing. An empty store yields an empty slice, not an error.
func (s *storyServiceImpl) ListStories(ctx context.Context) ([]models.StoryListing, error) {
	listings, err := s.stories.List(ctx, s.db)
	if err != nil {
		s.opLogger("list_stories").Error("Failed to list stories", zap.Error(err))
		return nil, err
	}
	if listings == nil {
		listings = []models.StoryListing{}
	}
	return listings, nil
}

// GetStory returns the fully hydrated story graph.
func (s *storyServiceImpl) GetStory(ctx context.Context, id int64) (*models.Story, error) {
	log := s.opLogger("get_story").With(zap.Int64("storyID", id))
	story, err := s.assembler.Assemble(ctx, id)
	if err != nil {
		log.Debug("Story fetch failed", zap.Error(err))
		return nil, err
	}
	log.Debug("Story fetched", zap.Int("pages", len(story.Pages)))
	return story, nil
}

// AddStory creates the story, its "Start" page and links the two in one transaction.
func (s *storyServiceImpl) AddStory(ctx context.Context, title string) (int64, error) {
	log := s.opLogger("add_story")
	if strings.TrimSpace(title) == "" {
		return 0, fmt.Errorf("%w: story title must not be blank", models.ErrInvalidArgument)
	}

	var storyID int64
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context, tx interfaces.DBTX) error {
		id, err := s.stories.Create(ctx, tx, title)
		if err != nil {
			return err
		}
		pageID, err := s.pages.Create(ctx, tx, id, models.StartPageName)
		if err != nil {
			return err
		}
		if err := s.stories.SetStartPage(ctx, tx, id, pageID); err != nil {
			return err
		}
		storyID = id
		return nil
	})
	if err != nil {
		log.Error("Failed to add story", zap.Error(err))
		return 0, err
	}

	log.Info("Story added", zap.Int64("storyID", storyID))
	return storyID, nil
}

// DeleteStory removes the story together with its pages and choices.
func (s *storyServiceImpl) DeleteStory(ctx context.Context, id int64) error {
	log := s.opLogger("delete_story").With(zap.Int64("storyID", id))
	if err := s.stories.Delete(ctx, s.db, id); err != nil {
		log.Debug("Story delete failed", zap.Error(err))
		return err
	}
	log.Info("Story deleted")
	return nil
}

// GetPage returns a page with its choices.
func (s *storyServiceImpl) GetPage(ctx context.Context, id int64) (*models.Page, error) {
	page, err := s.pages.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	choices, err := s.choices.ListByPage(ctx, s.db, id)
	if err != nil {
		s.opLogger("get_page").Error("Failed to load page choices", zap.Int64("pageID", id), zap.Error(err))
		return nil, err
	}
	if choices == nil {
		choices = []models.Choice{}
	}
	page.Options = choices
	return page, nil
}

// PatchPage applies a partial update. patch.ID, when set, must match id.
func (s *storyServiceImpl) PatchPage(ctx context.Context, id int64, patch models.PagePatch) error {
	log := s.opLogger("patch_page").With(zap.Int64("pageID", id))
	if patch.ID != 0 && patch.ID != id {
		return fmt.Errorf("%w: patch id %d does not match page id %d", models.ErrInvalidArgument, patch.ID, id)
	}
	if patch.IsEmpty() {
		return fmt.Errorf("%w: page %d patch has no fields to update", models.ErrInvalidArgument, id)
	}
	if _, err := s.pages.Patch(ctx, s.db, id, patch); err != nil {
		log.Debug("Page patch failed", zap.Error(err))
		return err
	}
	return nil
}

// CreatePage adds a page with an empty body to an existing story.
func (s *storyServiceImpl) CreatePage(ctx context.Context, storyID int64, name string) (int64, error) {
	log := s.opLogger("create_page").With(zap.Int64("storyID", storyID))
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%w: page name must not be blank", models.ErrInvalidArgument)
	}

	var pageID int64
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context, tx interfaces.DBTX) error {
		if _, err := s.stories.GetByID(ctx, tx, storyID); err != nil {
			return err
		}
		id, err := s.pages.Create(ctx, tx, storyID, name)
		if err != nil {
			return err
		}
		pageID = id
		return nil
	})
	if err != nil {
		log.Debug("Page create failed", zap.Error(err))
		return 0, err
	}

	log.Info("Page added to story", zap.Int64("pageID", pageID))
	return pageID, nil
}

// CreateChoice adds a choice leading from pageID to targetPageID.
// Both pages must exist; whether the target makes narrative sense is not checked.
func (s *storyServiceImpl) CreateChoice(ctx context.Context, pageID, targetPageID int64, text string) (*models.Choice, error) {
	log := s.opLogger("create_choice").With(zap.Int64("pageID", pageID), zap.Int64("targetPageID", targetPageID))

	choice := &models.Choice{PageID: pageID, Text: text, TargetPage: targetPageID}
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context, tx interfaces.DBTX) error {
		if _, err := s.pages.GetByID(ctx, tx, pageID); err != nil {
			return err
		}
		if _, err := s.pages.GetByID(ctx, tx, targetPageID); err != nil {
			return err
		}
		return s.choices.Create(ctx, tx, choice)
	})
	if err != nil {
		log.Debug("Choice create failed", zap.Error(err))
		return nil, err
	}

	log.Info("Choice created", zap.Int64("choiceID", choice.ID))
	return choice, nil
}
