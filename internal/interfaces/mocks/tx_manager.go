package mocks

import (
	"context"

	"story-editor/internal/interfaces"
)

// TxManager runs the callback directly, handing it the configured querier.
// Rollback is not simulated; CommitErr is returned after a successful callback.
type TxManager struct {
	Tx        interfaces.DBTX
	CommitErr error
	Calls     int
}

var _ interfaces.TxManager = (*TxManager)(nil)

func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.DBTX) error) error {
	m.Calls++
	if err := fn(ctx, m.Tx); err != nil {
		return err
	}
	return m.CommitErr
}
