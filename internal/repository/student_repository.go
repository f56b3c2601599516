package repository

import (
	"strconv"

	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/store"
)

// StudentRepository handles roster data access.
type StudentRepository struct {
	store store.TabularStore
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(st store.TabularStore) *StudentRepository {
	return &StudentRepository{store: st}
}

// Find returns the active student matching (id, classCode) exactly. This is
// the sole authorization predicate for student login; inactive rows are
// invisible here.
func (r *StudentRepository) Find(id, classCode string) (*model.Student, error) {
	rows, err := r.store.ListRows(SheetStudents)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		s := studentFromRow(row)
		if s.StudentID == id && s.ClassCode == classCode && s.Active {
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

// List returns every roster row in sheet order, active or not.
func (r *StudentRepository) List() ([]model.Student, error) {
	rows, err := r.store.ListRows(SheetStudents)
	if err != nil {
		return nil, err
	}
	students := make([]model.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, studentFromRow(row))
	}
	return students, nil
}

func studentFromRow(row store.Row) model.Student {
	active, _ := strconv.ParseBool(row["active"])
	return model.Student{
		StudentID: row["student_id"],
		Name:      row["name"],
		ClassCode: row["class_code"],
		Active:    active,
	}
}
