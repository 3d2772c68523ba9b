package database

import (
	"fmt"
	"strings"

	"story-editor/internal/models"
)

// patchColumn is one "column = ?" assignment of a partial update.
type patchColumn struct {
	column string
	value  any
}

// pagePatchColumns returns the assignments carried by patch in fixed order:
// name first, then body (stored as content).
func pagePatchColumns(patch models.PagePatch) []patchColumn {
	cols := make([]patchColumn, 0, 2)
	if patch.Name != nil {
		cols = append(cols, patchColumn{column: "name", value: *patch.Name})
	}
	if patch.Body != nil {
		cols = append(cols, patchColumn{column: "content", value: *patch.Body})
	}
	return cols
}

// buildPagePatchQuery builds the UPDATE for a partial page update.
// Column names come from pagePatchColumns only; every value is a placeholder,
// and the page id is bound last.
func buildPagePatchQuery(id int64, patch models.PagePatch) (string, []any, error) {
	cols := pagePatchColumns(patch)
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("%w: page %d patch has no fields to update", models.ErrInvalidArgument, id)
	}

	var sb strings.Builder
	args := make([]any, 0, len(cols)+1)

	sb.WriteString("UPDATE pages SET ")
	for i, c := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.column)
		sb.WriteString(" = ?")
		args = append(args, c.value)
	}
	sb.WriteString(" WHERE id = ?")
	args = append(args, id)

	return sb.String(), args, nil
}
