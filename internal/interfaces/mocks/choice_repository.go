package mocks

import (
	"context"

	"story-editor/internal/interfaces"
	"story-editor/internal/models"

	"github.com/stretchr/testify/mock"
)

// ChoiceRepository is a testify mock of interfaces.ChoiceRepository.
type ChoiceRepository struct {
	mock.Mock
}

var _ interfaces.ChoiceRepository = (*ChoiceRepository)(nil)

func (m *ChoiceRepository) ListByPage(ctx context.Context, querier interfaces.DBTX, pageID int64) ([]models.Choice, error) {
	args := m.Called(ctx, querier, pageID)
	choices, _ := args.Get(0).([]models.Choice)
	return choices, args.Error(1)
}

func (m *ChoiceRepository) Create(ctx context.Context, querier interfaces.DBTX, choice *models.Choice) error {
	args := m.Called(ctx, querier, choice)
	return args.Error(0)
}
