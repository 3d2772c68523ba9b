package database_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"story-editor/internal/database"
	"story-editor/internal/interfaces"
	"story-editor/internal/models"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// RepositoryTestSuite прогоняет репозитории на настоящем файле SQLite
type RepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	db      *sql.DB
	tx      *database.TransactionHelper
	stories interfaces.StoryRepository
	pages   interfaces.PageRepository
	choices interfaces.ChoiceRepository
	logger  *zap.Logger
}

func (s *RepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = zap.NewNop()

	db, err := database.Open(s.ctx, testConfig(filepath.Join(s.T().TempDir(), "repo.db")), s.logger)
	require.NoError(s.T(), err, "Failed to open test database")
	require.NoError(s.T(), database.ApplyMigrations(db, s.logger), "Failed to run migrations")

	s.db = db
	s.tx = database.NewTransactionHelper(db, s.logger)
	s.stories = database.NewSqliteStoryRepository(s.logger)
	s.pages = database.NewSqlitePageRepository(s.logger)
	s.choices = database.NewSqliteChoiceRepository(s.logger)
}

func (s *RepositoryTestSuite) TearDownSuite() {
	database.Close(s.db, s.logger)
}

// SetupTest очищает таблицы и сбрасывает счетчики id
func (s *RepositoryTestSuite) SetupTest() {
	for _, q := range []string{
		"DELETE FROM choices",
		"DELETE FROM pages",
		"DELETE FROM stories",
		"DELETE FROM sqlite_sequence",
	} {
		_, err := s.db.ExecContext(s.ctx, q)
		require.NoError(s.T(), err, q)
	}
}

func (s *RepositoryTestSuite) count(table string) int {
	var n int
	require.NoError(s.T(), s.db.QueryRowContext(s.ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func (s *RepositoryTestSuite) newStoryWithPage(title string) (storyID, pageID int64) {
	storyID, err := s.stories.Create(s.ctx, s.db, title)
	s.Require().NoError(err)
	pageID, err = s.pages.Create(s.ctx, s.db, storyID, models.StartPageName)
	s.Require().NoError(err)
	s.Require().NoError(s.stories.SetStartPage(s.ctx, s.db, storyID, pageID))
	return storyID, pageID
}

func (s *RepositoryTestSuite) TestStoryCreateAndGet() {
	id, err := s.stories.Create(s.ctx, s.db, "Dragon Cave")
	s.Require().NoError(err)
	s.Equal(int64(1), id)

	story, err := s.stories.GetByID(s.ctx, s.db, id)
	s.Require().NoError(err)
	s.Equal("Dragon Cave", story.Title)
	s.Nil(story.StartPage)
	s.False(story.CreatedAt.IsZero())
}

func (s *RepositoryTestSuite) TestStoryListIsOrderedAndNeverNil() {
	listings, err := s.stories.List(s.ctx, s.db)
	s.Require().NoError(err)
	s.NotNil(listings)
	s.Empty(listings)

	for _, title := range []string{"B", "A", "C"} {
		_, err := s.stories.Create(s.ctx, s.db, title)
		s.Require().NoError(err)
	}

	listings, err = s.stories.List(s.ctx, s.db)
	s.Require().NoError(err)
	s.Equal([]models.StoryListing{{ID: 1, Title: "B"}, {ID: 2, Title: "A"}, {ID: 3, Title: "C"}}, listings)
}

func (s *RepositoryTestSuite) TestStoryMissingIDs() {
	_, err := s.stories.GetByID(s.ctx, s.db, 42)
	s.ErrorIs(err, models.ErrNotFound)

	s.ErrorIs(s.stories.Delete(s.ctx, s.db, 42), models.ErrNotFound)
	s.ErrorIs(s.stories.SetStartPage(s.ctx, s.db, 42, 1), models.ErrNotFound)
}

func (s *RepositoryTestSuite) TestSetStartPage() {
	storyID, pageID := s.newStoryWithPage("Linked")

	story, err := s.stories.GetByID(s.ctx, s.db, storyID)
	s.Require().NoError(err)
	s.Require().NotNil(story.StartPage)
	s.Equal(pageID, *story.StartPage)
}

func (s *RepositoryTestSuite) TestPageCreateRequiresExistingStory() {
	_, err := s.pages.Create(s.ctx, s.db, 999, "Orphan")
	s.ErrorIs(err, models.ErrStorage)
	s.Equal(0, s.count("pages"))
}

func (s *RepositoryTestSuite) TestPageGetAndList() {
	storyID, startID := s.newStoryWithPage("Pages")
	secondID, err := s.pages.Create(s.ctx, s.db, storyID, "Second")
	s.Require().NoError(err)

	page, err := s.pages.GetByID(s.ctx, s.db, startID)
	s.Require().NoError(err)
	s.Equal(models.StartPageName, page.Name)
	s.Equal("", page.Body)
	s.Equal(storyID, page.StoryID)
	s.NotNil(page.Options)
	s.Empty(page.Options)

	pages, err := s.pages.ListByStory(s.ctx, s.db, storyID)
	s.Require().NoError(err)
	s.Require().Len(pages, 2)
	s.Equal(startID, pages[0].ID)
	s.Equal(secondID, pages[1].ID)

	_, err = s.pages.GetByID(s.ctx, s.db, 999)
	s.ErrorIs(err, models.ErrNotFound)

	empty, err := s.pages.ListByStory(s.ctx, s.db, 999)
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)
}

func (s *RepositoryTestSuite) TestPagePatchFieldsAreIndependent() {
	_, pageID := s.newStoryWithPage("Patch")
	name, body := "Cave", "It is dark."

	rows, err := s.pages.Patch(s.ctx, s.db, pageID, models.PagePatch{Name: &name})
	s.Require().NoError(err)
	s.Equal(int64(1), rows)

	page, err := s.pages.GetByID(s.ctx, s.db, pageID)
	s.Require().NoError(err)
	s.Equal("Cave", page.Name)
	s.Equal("", page.Body)

	_, err = s.pages.Patch(s.ctx, s.db, pageID, models.PagePatch{Body: &body})
	s.Require().NoError(err)

	page, err = s.pages.GetByID(s.ctx, s.db, pageID)
	s.Require().NoError(err)
	s.Equal("Cave", page.Name)
	s.Equal("It is dark.", page.Body)

	newName, newBody := "Tunnel", ""
	_, err = s.pages.Patch(s.ctx, s.db, pageID, models.PagePatch{Name: &newName, Body: &newBody})
	s.Require().NoError(err)

	page, err = s.pages.GetByID(s.ctx, s.db, pageID)
	s.Require().NoError(err)
	s.Equal("Tunnel", page.Name)
	s.Equal("", page.Body)
}

func (s *RepositoryTestSuite) TestPageEmptyPatchLeavesRowUntouched() {
	_, pageID := s.newStoryWithPage("Empty")
	body := "keep me"
	_, err := s.pages.Patch(s.ctx, s.db, pageID, models.PagePatch{Body: &body})
	s.Require().NoError(err)

	_, err = s.pages.Patch(s.ctx, s.db, pageID, models.PagePatch{})
	s.ErrorIs(err, models.ErrInvalidArgument)

	page, err := s.pages.GetByID(s.ctx, s.db, pageID)
	s.Require().NoError(err)
	s.Equal(models.StartPageName, page.Name)
	s.Equal("keep me", page.Body)
}

func (s *RepositoryTestSuite) TestPagePatchMissingPage() {
	name := "ghost"
	_, err := s.pages.Patch(s.ctx, s.db, 404, models.PagePatch{Name: &name})
	s.ErrorIs(err, models.ErrNotFound)
}

func (s *RepositoryTestSuite) TestChoicesRoundTrip() {
	storyID, startID := s.newStoryWithPage("Choices")
	targetID, err := s.pages.Create(s.ctx, s.db, storyID, "Target")
	s.Require().NoError(err)

	texts := []string{"Go left", "Go right", "Wait", "Go back"}
	for _, text := range texts {
		target := targetID
		if text == "Go back" {
			target = startID
		}
		choice := &models.Choice{PageID: startID, Text: text, TargetPage: target}
		s.Require().NoError(s.choices.Create(s.ctx, s.db, choice))
		s.NotZero(choice.ID)
	}

	got, err := s.choices.ListByPage(s.ctx, s.db, startID)
	s.Require().NoError(err)
	s.Require().Len(got, len(texts))
	for i, c := range got {
		s.Equal(texts[i], c.Text)
		s.Equal(startID, c.PageID)
	}
	s.Equal(startID, got[3].TargetPage)

	none, err := s.choices.ListByPage(s.ctx, s.db, targetID)
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *RepositoryTestSuite) TestChoiceWithMissingTargetIsRejected() {
	_, startID := s.newStoryWithPage("Dangling")
	err := s.choices.Create(s.ctx, s.db, &models.Choice{PageID: startID, Text: "Nowhere", TargetPage: 999})
	s.ErrorIs(err, models.ErrStorage)
	s.Equal(0, s.count("choices"))
}

func (s *RepositoryTestSuite) TestDeleteStoryCascades() {
	storyID, startID := s.newStoryWithPage("Doomed")
	otherID, err := s.pages.Create(s.ctx, s.db, storyID, "Other")
	s.Require().NoError(err)
	s.Require().NoError(s.choices.Create(s.ctx, s.db, &models.Choice{PageID: startID, Text: "On", TargetPage: otherID}))

	keptStory, keptPage := s.newStoryWithPage("Survivor")

	s.Require().NoError(s.stories.Delete(s.ctx, s.db, storyID))

	_, err = s.stories.GetByID(s.ctx, s.db, storyID)
	s.ErrorIs(err, models.ErrNotFound)
	_, err = s.pages.GetByID(s.ctx, s.db, startID)
	s.ErrorIs(err, models.ErrNotFound)
	s.Equal(0, s.count("choices"))

	_, err = s.stories.GetByID(s.ctx, s.db, keptStory)
	s.NoError(err)
	_, err = s.pages.GetByID(s.ctx, s.db, keptPage)
	s.NoError(err)
}

func (s *RepositoryTestSuite) TestTransactionRollsBackOnError() {
	failure := errors.New("second step failed")
	err := s.tx.WithTransaction(s.ctx, func(ctx context.Context, tx interfaces.DBTX) error {
		if _, err := s.stories.Create(ctx, tx, "Half-made"); err != nil {
			return err
		}
		return failure
	})
	s.ErrorIs(err, failure)
	s.Equal(0, s.count("stories"))
}

func (s *RepositoryTestSuite) TestTransactionRollsBackOnPanic() {
	s.Panics(func() {
		_ = s.tx.WithTransaction(s.ctx, func(ctx context.Context, tx interfaces.DBTX) error {
			if _, err := s.stories.Create(ctx, tx, "Panicked"); err != nil {
				return err
			}
			panic("boom")
		})
	})
	s.Equal(0, s.count("stories"))
}

func (s *RepositoryTestSuite) TestTransactionCommits() {
	var storyID int64
	err := s.tx.WithTransaction(s.ctx, func(ctx context.Context, tx interfaces.DBTX) error {
		id, err := s.stories.Create(ctx, tx, "Committed")
		if err != nil {
			return err
		}
		pageID, err := s.pages.Create(ctx, tx, id, models.StartPageName)
		if err != nil {
			return err
		}
		storyID = id
		return s.stories.SetStartPage(ctx, tx, id, pageID)
	})
	s.Require().NoError(err)

	story, err := s.stories.GetByID(s.ctx, s.db, storyID)
	s.Require().NoError(err)
	s.NotNil(story.StartPage)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
