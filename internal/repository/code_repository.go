package repository

import (
	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/store"
)

// CodeRepository reads the static pedagogical code reference sheet.
type CodeRepository struct {
	store store.TabularStore
}

// NewCodeRepository creates a new CodeRepository.
func NewCodeRepository(st store.TabularStore) *CodeRepository {
	return &CodeRepository{store: st}
}

// List returns every code in sheet order.
func (r *CodeRepository) List() ([]model.Code, error) {
	rows, err := r.store.ListRows(SheetCodes)
	if err != nil {
		return nil, err
	}
	codes := make([]model.Code, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, model.Code{
			CodeID:   row["code_id"],
			Category: row["category"],
			Label:    row["label"],
			Color:    row["color"],
		})
	}
	return codes, nil
}
