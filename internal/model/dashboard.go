package model

// DashboardStudent is one roster line of the per-date dashboard.
// ReflectionID is empty when the student has not submitted for the
// selected date.
type DashboardStudent struct {
	StudentID    string `json:"student_id"`
	Name         string `json:"name"`
	Submitted    bool   `json:"submitted"`
	ReflectionID string `json:"reflection_id"`
}

// DashboardRequest is the payload for teacher/getDashboard. Date is
// optional; without it the roster shows nobody as submitted.
type DashboardRequest struct {
	Date string `json:"date"`
}

// DashboardResponse wraps teacher/getDashboard. Dates holds the distinct
// canonical class dates across all reflections, most recent first.
type DashboardResponse struct {
	Students []DashboardStudent `json:"students"`
	Dates    []string           `json:"dates"`
}

// StudentCardRequest is the payload for teacher/getStudentCard.
type StudentCardRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

// StudentCardEntry is one reflection of the card, enriched with its
// feedback when present.
type StudentCardEntry struct {
	Reflection
	Feedback *Feedback `json:"feedback"`
}

// StudentCardResponse wraps teacher/getStudentCard. CodeFrequency counts
// highlight code labels across the whole history; the client renders it as
// the strategy chart without another round-trip.
type StudentCardResponse struct {
	History       []StudentCardEntry `json:"history"`
	CodeFrequency map[string]int     `json:"code_frequency"`
}
