package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"story-editor/internal/interfaces"
	"story-editor/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StoryAssembler builds a fully hydrated story graph out of the story, page
// and choice repositories. Choices of different pages are fetched
// concurrently, at most fanout at a time.
type StoryAssembler struct {
	db      interfaces.DBTX
	stories interfaces.StoryRepository
	pages   interfaces.PageRepository
	choices interfaces.ChoiceRepository
	fanout  int
	logger  *zap.Logger
}

// NewStoryAssembler creates an assembler. fanout below 1 is treated as 1.
func NewStoryAssembler(
	db interfaces.DBTX,
	stories interfaces.StoryRepository,
	pages interfaces.PageRepository,
	choices interfaces.ChoiceRepository,
	fanout int,
	logger *zap.Logger,
) *StoryAssembler {
	if fanout < 1 {
		fanout = 1
	}
	return &StoryAssembler{
		db:      db,
		stories: stories,
		pages:   pages,
		choices: choices,
		fanout:  fanout,
		logger:  logger.Named("StoryAssembler"),
	}
}

// Assemble returns the story with every page and every page's choices.
// Pages are ordered by id ascending. Any per-page failure fails the whole
// assembly; no partial story is returned.
func (a *StoryAssembler) Assemble(ctx context.Context, storyID int64) (*models.Story, error) {
	log := a.logger.With(zap.Int64("storyID", storyID))

	story, err := a.stories.GetByID(ctx, a.db, storyID)
	if err != nil {
		return nil, err
	}

	pages, err := a.pages.ListByStory(ctx, a.db, storyID)
	if err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []models.Page{}
	}
	slices.SortFunc(pages, func(x, y models.Page) int { return cmp.Compare(x.ID, y.ID) })

	choicesByPage, err := a.fetchChoices(ctx, pages)
	if err != nil {
		log.Error("Failed to assemble story", zap.Error(err))
		return nil, fmt.Errorf("%w: assemble story %d: %w", models.ErrStorage, storyID, err)
	}

	for i := range pages {
		opts := choicesByPage[pages[i].ID]
		if opts == nil {
			opts = []models.Choice{}
		}
		pages[i].Options = opts
	}
	story.Pages = pages

	log.Debug("Story assembled", zap.Int("pages", len(pages)))
	return story, nil
}

// fetchChoices loads the choices of every page, keyed by the page id each
// task was given. The first failure cancels the remaining fetches.
func (a *StoryAssembler) fetchChoices(ctx context.Context, pages []models.Page) (map[int64][]models.Choice, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.fanout)

	var mu sync.Mutex
	result := make(map[int64][]models.Choice, len(pages))

	for _, p := range pages {
		pageID := p.ID
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			choices, err := a.choices.ListByPage(gctx, a.db, pageID)
			if err != nil {
				return fmt.Errorf("page %d: %w", pageID, err)
			}
			mu.Lock()
			result[pageID] = choices
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
