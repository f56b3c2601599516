package repository

import (
	"encoding/json"
	"fmt"

	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/store"
)

// MetaRepository handles the key-value Meta collection: the teacher secret
// and the question set definitions.
type MetaRepository struct {
	store store.TabularStore
	locks *store.KeyedMutex
}

// NewMetaRepository creates a new MetaRepository.
func NewMetaRepository(st store.TabularStore, locks *store.KeyedMutex) *MetaRepository {
	return &MetaRepository{store: st, locks: locks}
}

// Get returns the value for key, or ErrNotFound.
func (r *MetaRepository) Get(key string) (string, error) {
	rows, err := r.store.ListRows(SheetMeta)
	if err != nil {
		return "", err
	}
	for _, row := range rows {
		if row["key"] == key {
			return row["value"], nil
		}
	}
	return "", ErrNotFound
}

// Upsert writes value for key, updating the unique matching row or
// appending one. Runs under the key's lock (scan-then-write).
func (r *MetaRepository) Upsert(key, value string) error {
	unlock := r.locks.Lock("meta:" + key)
	defer unlock()

	rows, err := r.store.ListRows(SheetMeta)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if row["key"] == key {
			return r.store.UpdateRow(SheetMeta, i, store.Row{"value": value})
		}
	}
	return r.store.AppendRow(SheetMeta, store.Row{"key": key, "value": value})
}

// Questions resolves the active question set: the next_questions override
// when one is set, otherwise default_questions. A cleared override (empty
// or the JSON null literal the clear path writes) falls through to the
// default.
func (r *MetaRepository) Questions() ([]model.Question, error) {
	if raw, err := r.Get(MetaNextQuestions); err == nil && !isClearedOverride(raw) {
		return decodeQuestions(raw)
	}

	raw, err := r.Get(MetaDefaultQuestions)
	if err != nil {
		if err == ErrNotFound {
			return []model.Question{}, nil
		}
		return nil, err
	}
	return decodeQuestions(raw)
}

func isClearedOverride(raw string) bool {
	return raw == "" || raw == "null"
}

func decodeQuestions(raw string) ([]model.Question, error) {
	var qs []model.Question
	if err := json.Unmarshal([]byte(raw), &qs); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if qs == nil {
		qs = []model.Question{}
	}
	return qs, nil
}
