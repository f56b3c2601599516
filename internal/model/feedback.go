package model

import "time"

// Highlight is a text span tagged with a pedagogical code. It has no stable
// position: only the verbatim substring is kept, and reconstruction searches
// for it in the re-rendered content. CodeLabel and Color are value-copies of
// the Code at creation time, so later edits to a Code never rewrite history.
type Highlight struct {
	// ID is a creation-time millisecond timestamp; reconstruction applies
	// highlights in ascending ID order.
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	CodeID    string `json:"code_id"`
	CodeLabel string `json:"code_label"`
	Color     string `json:"color"`
}

// Feedback is a teacher's response to one reflection: a free-text comment
// plus the highlight set. At most one Feedback exists per reflection; saves
// replace the whole comment and highlight sequence.
type Feedback struct {
	FeedbackID     string      `json:"feedback_id"`
	ReflectionID   string      `json:"reflection_id"`
	TeacherComment string      `json:"teacher_comment"`
	Highlights     []Highlight `json:"highlights"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// SaveFeedbackRequest is the payload for teacher/saveFeedback. The stored
// comment and highlights are fully replaced, never merged.
type SaveFeedbackRequest struct {
	ReflectionID string      `json:"reflection_id" validate:"required"`
	Comment      string      `json:"comment"`
	Highlights   []Highlight `json:"highlights"`
}
