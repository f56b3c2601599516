package repository

import (
	"errors"

	"github.com/hanseilab/hansei-backend/internal/store"
)

// Collection names. One worksheet per collection.
const (
	SheetMeta        = "Meta"
	SheetStudents    = "Students"
	SheetReflections = "Reflections"
	SheetFeedback    = "Feedback"
	SheetCodes       = "Codes"
	SheetSessions    = "Sessions"
)

// Meta keys.
const (
	MetaTeacherSecret    = "teacher_secret"
	MetaDefaultQuestions = "default_questions"
	MetaNextQuestions    = "next_questions"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// Headers defines the fixed schema of every collection. Headers are set at
// sheet creation and never change.
var Headers = map[string][]string{
	SheetMeta:        {"key", "value"},
	SheetStudents:    {"student_id", "name", "class_code", "active"},
	SheetReflections: {"reflection_id", "student_id", "class_date", "submission_time", "content_json", "feedback_read"},
	SheetFeedback:    {"feedback_id", "reflection_id", "teacher_comment", "highlights_json", "updated_at"},
	SheetCodes:       {"code_id", "category", "label", "color"},
	SheetSessions:    {"token", "user_id", "role", "created_at"},
}

// EnsureSchema creates every collection that is missing from the store.
func EnsureSchema(st store.TabularStore) error {
	for _, name := range []string{SheetMeta, SheetStudents, SheetReflections, SheetFeedback, SheetCodes, SheetSessions} {
		if err := st.EnsureSheet(name, Headers[name]); err != nil {
			return err
		}
	}
	return nil
}
