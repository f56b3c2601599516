package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/store"
)

// FeedbackRepository handles teacher feedback rows. The repository, not the
// store, enforces the at-most-one-feedback-per-reflection invariant through
// its upsert.
type FeedbackRepository struct {
	store store.TabularStore
	locks *store.KeyedMutex
}

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(st store.TabularStore, locks *store.KeyedMutex) *FeedbackRepository {
	return &FeedbackRepository{store: st, locks: locks}
}

// For returns the feedback row for a reflection, or ErrNotFound.
func (r *FeedbackRepository) For(reflectionID string) (*model.Feedback, error) {
	rows, err := r.store.ListRows(SheetFeedback)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row["reflection_id"] == reflectionID {
			fb := feedbackFromRow(row)
			return &fb, nil
		}
	}
	return nil, ErrNotFound
}

// Upsert writes the given columns for the feedback row keyed by
// reflectionID: an existing row has exactly those columns plus updated_at
// overwritten (others preserved), a missing row is appended with a fresh
// feedback_id. The scan-then-write sequence runs under the key's lock since
// the store gives no cross-call atomicity.
func (r *FeedbackRepository) Upsert(reflectionID string, cols store.Row) error {
	unlock := r.locks.Lock("feedback:" + reflectionID)
	defer unlock()

	rows, err := r.store.ListRows(SheetFeedback)
	if err != nil {
		return err
	}

	now := time.Now().Format(time.RFC3339)

	for i, row := range rows {
		if row["reflection_id"] != reflectionID {
			continue
		}
		update := store.Row{"updated_at": now}
		for k, v := range cols {
			update[k] = v
		}
		return r.store.UpdateRow(SheetFeedback, i, update)
	}

	insert := store.Row{
		"feedback_id":   uuid.New().String(),
		"reflection_id": reflectionID,
		"updated_at":    now,
	}
	for k, v := range cols {
		insert[k] = v
	}
	return r.store.AppendRow(SheetFeedback, insert)
}

func feedbackFromRow(row store.Row) model.Feedback {
	var highlights []model.Highlight
	if raw := row["highlights_json"]; raw != "" {
		// A malformed cell reads as no highlights rather than an error,
		// matching the original's tolerance of hand-edited sheets.
		_ = json.Unmarshal([]byte(raw), &highlights)
	}
	updated, _ := time.Parse(time.RFC3339, row["updated_at"])
	return model.Feedback{
		FeedbackID:     row["feedback_id"],
		ReflectionID:   row["reflection_id"],
		TeacherComment: row["teacher_comment"],
		Highlights:     highlights,
		UpdatedAt:      updated,
	}
}
