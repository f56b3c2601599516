package model

import "time"

// Reflection is one submitted daily reflection. Rows are append-only except
// FeedbackRead, which is flipped in place when the student acknowledges
// feedback. Nothing prevents several reflections per (student, date); that
// is a policy choice, not an oversight.
type Reflection struct {
	ReflectionID   string    `json:"reflection_id"`
	StudentID      string    `json:"student_id"`
	ClassDate      string    `json:"class_date"`
	SubmissionTime time.Time `json:"submission_time"`
	// ContentJSON is the submitted answers as an opaque JSON object keyed
	// by question id. It is stored and served in raw serialized form.
	ContentJSON  string `json:"content_json"`
	FeedbackRead bool   `json:"feedback_read"`
}

// SubmitReflectionRequest is the payload for student/submitReflection.
// Content must be present but may be an empty object; the nil check lives in
// the service because the required rule would also reject an empty map.
type SubmitReflectionRequest struct {
	Date    string                 `json:"date" validate:"required"`
	Content map[string]interface{} `json:"content"`
}

// SubmitReflectionResponse acknowledges a submission.
type SubmitReflectionResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// HistoryEntry is one row of a student's own history view, with the
// feedback state joined in.
type HistoryEntry struct {
	ReflectionID string   `json:"reflection_id"`
	Date         string   `json:"date"`
	Content      string   `json:"content"`
	HasFeedback  bool     `json:"has_feedback"`
	FeedbackRead bool     `json:"feedback_read"`
	Codes        []string `json:"codes"`
}

// HistoryResponse wraps student/getHistory.
type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
}

// UnreadEntry is one reflection with feedback the student has not read yet.
type UnreadEntry struct {
	ReflectionID string `json:"reflection_id"`
	Date         string `json:"date"`
	Comment      string `json:"comment"`
}

// UnreadFeedbackResponse wraps student/getUnreadFeedback.
type UnreadFeedbackResponse struct {
	Unread []UnreadEntry `json:"unread"`
}

// MarkFeedbackReadRequest is the payload for student/markFeedbackRead.
// Unknown ids are silently ignored.
type MarkFeedbackReadRequest struct {
	ReflectionIDs []string `json:"reflection_ids"`
}

// SuccessResponse is the bare acknowledgement several actions return.
type SuccessResponse struct {
	Success bool `json:"success"`
}
