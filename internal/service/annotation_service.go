package service

import (
	"encoding/json"

	"github.com/hanseilab/hansei-backend/internal/highlight"
	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/repository"
	"github.com/hanseilab/hansei-backend/internal/store"
	"github.com/rs/zerolog"
)

// AnnotationService owns teacher feedback: the comment + highlight upsert,
// highlight reconstruction, and the next-questions override.
type AnnotationService struct {
	feedback *repository.FeedbackRepository
	codes    *repository.CodeRepository
	meta     *repository.MetaRepository
	log      zerolog.Logger
}

// NewAnnotationService creates an AnnotationService.
func NewAnnotationService(
	feedback *repository.FeedbackRepository,
	codes *repository.CodeRepository,
	meta *repository.MetaRepository,
	log zerolog.Logger,
) *AnnotationService {
	return &AnnotationService{
		feedback: feedback,
		codes:    codes,
		meta:     meta,
		log:      log.With().Str("component", "annotation_service").Logger(),
	}
}

// Save replaces the stored comment and highlight set for a reflection.
// There is no merge: saving twice leaves exactly the second payload.
// Highlights arriving without code metadata get label and color
// value-copied from the Codes sheet now, so later code edits never change
// what was highlighted historically.
func (s *AnnotationService) Save(req model.SaveFeedbackRequest) (*model.SuccessResponse, error) {
	highlights := req.Highlights
	if highlights == nil {
		highlights = []model.Highlight{}
	}
	if err := s.denormalizeCodes(highlights); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(highlights)
	if err != nil {
		return nil, err
	}

	err = s.feedback.Upsert(req.ReflectionID, store.Row{
		"reflection_id":   req.ReflectionID,
		"teacher_comment": req.Comment,
		"highlights_json": string(encoded),
	})
	if err != nil {
		s.log.Error().Err(err).Str("reflection_id", req.ReflectionID).Msg("failed to save feedback")
		return nil, err
	}
	return &model.SuccessResponse{Success: true}, nil
}

// Reconstruct places saved highlights back onto re-rendered reflection
// text. Highlights whose text is gone are dropped from the result only;
// the persisted feedback is never altered by a failed reconstruction.
func (s *AnnotationService) Reconstruct(rendered string, highlights []model.Highlight) []highlight.Span {
	return highlight.Reconstruct(rendered, highlights)
}

// SetNextQuestions stores the question override for the next session. A nil
// Questions clears the override: the JSON null literal is written so the
// resolution in Questions() falls back to the default set.
func (s *AnnotationService) SetNextQuestions(req model.SetNextQuestionsRequest) (*model.SuccessResponse, error) {
	value := "null"
	if req.Questions != nil {
		encoded, err := json.Marshal(*req.Questions)
		if err != nil {
			return nil, err
		}
		value = string(encoded)
	}

	if err := s.meta.Upsert(repository.MetaNextQuestions, value); err != nil {
		s.log.Error().Err(err).Msg("failed to set next questions")
		return nil, err
	}
	return &model.SuccessResponse{Success: true}, nil
}

// denormalizeCodes fills missing label/color on highlights from the code
// reference sheet. Already-populated copies are left alone.
func (s *AnnotationService) denormalizeCodes(highlights []model.Highlight) error {
	needed := false
	for _, h := range highlights {
		if h.CodeID != "" && (h.CodeLabel == "" || h.Color == "") {
			needed = true
			break
		}
	}
	if !needed {
		return nil
	}

	codes, err := s.codes.List()
	if err != nil {
		return err
	}
	byID := make(map[string]model.Code, len(codes))
	for _, c := range codes {
		byID[c.CodeID] = c
	}

	for i := range highlights {
		c, ok := byID[highlights[i].CodeID]
		if !ok {
			continue
		}
		if highlights[i].CodeLabel == "" {
			highlights[i].CodeLabel = c.Label
		}
		if highlights[i].Color == "" {
			highlights[i].Color = c.Color
		}
	}
	return nil
}
