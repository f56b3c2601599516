package service

import (
	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/repository"
	"github.com/rs/zerolog"
)

// CodeService serves the static pedagogical code list.
type CodeService struct {
	codes *repository.CodeRepository
	log   zerolog.Logger
}

// NewCodeService creates a CodeService.
func NewCodeService(codes *repository.CodeRepository, log zerolog.Logger) *CodeService {
	return &CodeService{
		codes: codes,
		log:   log.With().Str("component", "code_service").Logger(),
	}
}

// List returns every code in sheet order.
func (s *CodeService) List() (*model.CodesResponse, error) {
	codes, err := s.codes.List()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list codes")
		return nil, err
	}
	return &model.CodesResponse{Codes: codes}, nil
}
