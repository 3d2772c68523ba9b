package database

import (
	"database/sql"
	"fmt"

	"story-editor/internal/models"
)

// requireAffected returns the number of affected rows and turns 0 into models.ErrNotFound.
func requireAffected(res sql.Result, entity string, id int64) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read rows affected for %s %d: %w", models.ErrStorage, entity, id, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("%s %d: %w", entity, id, models.ErrNotFound)
	}
	return n, nil
}
