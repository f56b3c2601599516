package handler

import (
	"encoding/json"

	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/service"
)

// TeacherHandler exposes the teacher/* actions.
type TeacherHandler struct {
	dashboardService  *service.DashboardService
	annotationService *service.AnnotationService
	codeService       *service.CodeService
}

// NewTeacherHandler creates a TeacherHandler.
func NewTeacherHandler(
	dashboardService *service.DashboardService,
	annotationService *service.AnnotationService,
	codeService *service.CodeService,
) *TeacherHandler {
	return &TeacherHandler{
		dashboardService:  dashboardService,
		annotationService: annotationService,
		codeService:       codeService,
	}
}

// GetDashboard handles teacher/getDashboard.
func (h *TeacherHandler) GetDashboard(_ model.AuthContext, payload json.RawMessage) (interface{}, error) {
	var req model.DashboardRequest
	if err := bind(payload, &req); err != nil {
		return nil, err
	}
	return h.dashboardService.Dashboard(req.Date)
}

// GetStudentCard handles teacher/getStudentCard.
func (h *TeacherHandler) GetStudentCard(_ model.AuthContext, payload json.RawMessage) (interface{}, error) {
	var req model.StudentCardRequest
	if err := bind(payload, &req); err != nil {
		return nil, err
	}
	return h.dashboardService.StudentCard(req.StudentID)
}

// SaveFeedback handles teacher/saveFeedback.
func (h *TeacherHandler) SaveFeedback(_ model.AuthContext, payload json.RawMessage) (interface{}, error) {
	var req model.SaveFeedbackRequest
	if err := bind(payload, &req); err != nil {
		return nil, err
	}
	return h.annotationService.Save(req)
}

// GetCodes handles teacher/getCodes.
func (h *TeacherHandler) GetCodes(_ model.AuthContext, _ json.RawMessage) (interface{}, error) {
	return h.codeService.List()
}

// SetNextQuestions handles teacher/setNextQuestions.
func (h *TeacherHandler) SetNextQuestions(_ model.AuthContext, payload json.RawMessage) (interface{}, error) {
	var req model.SetNextQuestionsRequest
	if err := bind(payload, &req); err != nil {
		return nil, err
	}
	return h.annotationService.SetNextQuestions(req)
}
