package handler

import (
	"encoding/json"

	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/service"
)

// StudentHandler exposes the student/* actions.
type StudentHandler struct {
	reflectionService *service.ReflectionService
}

// NewStudentHandler creates a StudentHandler.
func NewStudentHandler(reflectionService *service.ReflectionService) *StudentHandler {
	return &StudentHandler{reflectionService: reflectionService}
}

// GetQuestions handles student/getQuestions.
func (h *StudentHandler) GetQuestions(_ model.AuthContext, _ json.RawMessage) (interface{}, error) {
	return h.reflectionService.Questions()
}

// SubmitReflection handles student/submitReflection.
func (h *StudentHandler) SubmitReflection(auth model.AuthContext, payload json.RawMessage) (interface{}, error) {
	var req model.SubmitReflectionRequest
	if err := bind(payload, &req); err != nil {
		return nil, err
	}
	return h.reflectionService.Submit(auth, req)
}

// GetHistory handles student/getHistory.
func (h *StudentHandler) GetHistory(auth model.AuthContext, _ json.RawMessage) (interface{}, error) {
	return h.reflectionService.History(auth)
}

// GetUnreadFeedback handles student/getUnreadFeedback.
func (h *StudentHandler) GetUnreadFeedback(auth model.AuthContext, _ json.RawMessage) (interface{}, error) {
	return h.reflectionService.UnreadFeedback(auth)
}

// MarkFeedbackRead handles student/markFeedbackRead.
func (h *StudentHandler) MarkFeedbackRead(auth model.AuthContext, payload json.RawMessage) (interface{}, error) {
	var req model.MarkFeedbackReadRequest
	if err := bind(payload, &req); err != nil {
		return nil, err
	}
	return h.reflectionService.MarkRead(auth, req.ReflectionIDs)
}
