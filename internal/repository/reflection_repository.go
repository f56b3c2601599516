package repository

import (
	"strconv"
	"time"

	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/store"
)

// ReflectionRepository handles reflection rows. The collection is
// append-only except for the feedback_read flag.
type ReflectionRepository struct {
	store store.TabularStore
	loc   *time.Location
}

// NewReflectionRepository creates a new ReflectionRepository. loc is the
// timezone used for date canonicalization.
func NewReflectionRepository(st store.TabularStore, loc *time.Location) *ReflectionRepository {
	return &ReflectionRepository{store: st, loc: loc}
}

// Insert appends a reflection row. It never checks for an existing same-day
// reflection; duplicate policy lives in the service layer.
func (r *ReflectionRepository) Insert(ref model.Reflection) error {
	return r.store.AppendRow(SheetReflections, store.Row{
		"reflection_id":   ref.ReflectionID,
		"student_id":      ref.StudentID,
		"class_date":      ref.ClassDate,
		"submission_time": ref.SubmissionTime.Format(time.RFC3339),
		"content_json":    ref.ContentJSON,
		"feedback_read":   strconv.FormatBool(ref.FeedbackRead),
	})
}

// ByStudent returns one student's reflections, most recent first, with
// class dates canonicalized.
func (r *ReflectionRepository) ByStudent(studentID string) ([]model.Reflection, error) {
	all, err := r.all()
	if err != nil {
		return nil, err
	}
	var out []model.Reflection
	for _, ref := range all {
		if ref.StudentID == studentID {
			out = append(out, ref)
		}
	}
	// Reverse insertion order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// ByDate returns every reflection whose canonical class date equals dateStr.
func (r *ReflectionRepository) ByDate(dateStr string) ([]model.Reflection, error) {
	all, err := r.all()
	if err != nil {
		return nil, err
	}
	var out []model.Reflection
	for _, ref := range all {
		if ref.ClassDate == dateStr {
			out = append(out, ref)
		}
	}
	return out, nil
}

// All returns every reflection in insertion order with canonical dates.
func (r *ReflectionRepository) All() ([]model.Reflection, error) {
	return r.all()
}

// MarkRead sets feedback_read on every reflection whose id is in ids.
// Unknown ids are silently ignored.
func (r *ReflectionRepository) MarkRead(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	rows, err := r.store.ListRows(SheetReflections)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if wanted[row["reflection_id"]] {
			if err := r.store.UpdateRow(SheetReflections, i, store.Row{"feedback_read": "true"}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *ReflectionRepository) all() ([]model.Reflection, error) {
	rows, err := r.store.ListRows(SheetReflections)
	if err != nil {
		return nil, err
	}
	out := make([]model.Reflection, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.fromRow(row))
	}
	return out, nil
}

func (r *ReflectionRepository) fromRow(row store.Row) model.Reflection {
	read, _ := strconv.ParseBool(row["feedback_read"])
	submitted, _ := time.Parse(time.RFC3339, row["submission_time"])
	return model.Reflection{
		ReflectionID:   row["reflection_id"],
		StudentID:      row["student_id"],
		ClassDate:      CanonicalDate(row["class_date"], r.loc),
		SubmissionTime: submitted,
		ContentJSON:    row["content_json"],
		FeedbackRead:   read,
	}
}
