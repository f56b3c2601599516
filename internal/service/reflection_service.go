package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/repository"
	"github.com/hanseilab/hansei-backend/internal/response"
	"github.com/rs/zerolog"
)

// ReflectionService covers the student-facing workflow: question set,
// submission intake, history, and feedback read-state.
type ReflectionService struct {
	reflections     *repository.ReflectionRepository
	feedback        *repository.FeedbackRepository
	meta            *repository.MetaRepository
	allowDuplicates bool
	loc             *time.Location
	log             zerolog.Logger
}

// NewReflectionService creates a ReflectionService.
func NewReflectionService(
	reflections *repository.ReflectionRepository,
	feedback *repository.FeedbackRepository,
	meta *repository.MetaRepository,
	allowDuplicates bool,
	loc *time.Location,
	log zerolog.Logger,
) *ReflectionService {
	return &ReflectionService{
		reflections:     reflections,
		feedback:        feedback,
		meta:            meta,
		allowDuplicates: allowDuplicates,
		loc:             loc,
		log:             log.With().Str("component", "reflection_service").Logger(),
	}
}

// Questions returns the active question set (override or default).
func (s *ReflectionService) Questions() (*model.QuestionsResponse, error) {
	qs, err := s.meta.Questions()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to resolve questions")
		return nil, err
	}
	return &model.QuestionsResponse{Questions: qs}, nil
}

// Submit stores a new reflection for the caller. The content object is kept
// opaque: it is serialized once here and never interpreted again.
func (s *ReflectionService) Submit(auth model.AuthContext, req model.SubmitReflectionRequest) (*model.SubmitReflectionResponse, error) {
	// Content must be present; an empty answer object is a valid submission.
	if req.Content == nil {
		return nil, response.New(response.ErrValidation, "Validation failed: content is a required field")
	}

	date := repository.CanonicalDate(req.Date, s.loc)

	if !s.allowDuplicates {
		existing, err := s.reflections.ByStudent(auth.ID)
		if err != nil {
			return nil, err
		}
		for _, ref := range existing {
			if ref.ClassDate == date {
				return nil, response.New(response.ErrConflict, "A reflection for this date already exists")
			}
		}
	}

	content, err := json.Marshal(req.Content)
	if err != nil {
		return nil, response.NewCode(response.ErrValidation)
	}

	ref := model.Reflection{
		ReflectionID:   uuid.New().String(),
		StudentID:      auth.ID,
		ClassDate:      date,
		SubmissionTime: time.Now(),
		ContentJSON:    string(content),
		FeedbackRead:   false,
	}
	if err := s.reflections.Insert(ref); err != nil {
		s.log.Error().Err(err).Str("student_id", auth.ID).Msg("failed to insert reflection")
		return nil, err
	}

	return &model.SubmitReflectionResponse{Success: true, ID: ref.ReflectionID}, nil
}

// History returns the caller's reflections, most recent first, each joined
// with its feedback state and the ordered code ids of its highlights.
func (s *ReflectionService) History(auth model.AuthContext) (*model.HistoryResponse, error) {
	refs, err := s.reflections.ByStudent(auth.ID)
	if err != nil {
		return nil, err
	}

	history := make([]model.HistoryEntry, 0, len(refs))
	for _, ref := range refs {
		entry := model.HistoryEntry{
			ReflectionID: ref.ReflectionID,
			Date:         ref.ClassDate,
			Content:      ref.ContentJSON,
			FeedbackRead: ref.FeedbackRead,
			Codes:        []string{},
		}
		fb, err := s.feedback.For(ref.ReflectionID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if fb != nil {
			entry.HasFeedback = true
			for _, h := range fb.Highlights {
				entry.Codes = append(entry.Codes, h.CodeID)
			}
		}
		history = append(history, entry)
	}
	return &model.HistoryResponse{History: history}, nil
}

// UnreadFeedback returns the caller's reflections that have feedback the
// student has not read yet, in original submission order.
func (s *ReflectionService) UnreadFeedback(auth model.AuthContext) (*model.UnreadFeedbackResponse, error) {
	all, err := s.reflections.All()
	if err != nil {
		return nil, err
	}

	unread := make([]model.UnreadEntry, 0)
	for _, ref := range all {
		if ref.StudentID != auth.ID || ref.FeedbackRead {
			continue
		}
		fb, err := s.feedback.For(ref.ReflectionID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		unread = append(unread, model.UnreadEntry{
			ReflectionID: ref.ReflectionID,
			Date:         ref.ClassDate,
			Comment:      fb.TeacherComment,
		})
	}
	return &model.UnreadFeedbackResponse{Unread: unread}, nil
}

// MarkRead flips feedback_read on the given reflections. Ids that match
// nothing are ignored and the call still succeeds.
func (s *ReflectionService) MarkRead(auth model.AuthContext, ids []string) (*model.SuccessResponse, error) {
	if err := s.reflections.MarkRead(ids); err != nil {
		s.log.Error().Err(err).Str("student_id", auth.ID).Msg("failed to mark feedback read")
		return nil, err
	}
	return &model.SuccessResponse{Success: true}, nil
}
