package model

// Question is one prompt of the reflection form. Scale questions carry a
// Min/Max range; text questions leave them zero.
type Question struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
	Min   int    `json:"min,omitempty"`
	Max   int    `json:"max,omitempty"`
}

// QuestionsResponse wraps student/getQuestions.
type QuestionsResponse struct {
	Questions []Question `json:"questions"`
}

// SetNextQuestionsRequest is the payload for teacher/setNextQuestions.
// A null Questions clears the override so resolution falls back to the
// default question set.
type SetNextQuestionsRequest struct {
	Questions *[]Question `json:"questions"`
}
