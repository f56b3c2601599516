package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/hanseilab/hansei-backend/internal/config"
	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/repository"
	"github.com/hanseilab/hansei-backend/internal/response"
	"github.com/rs/zerolog"
)

// Authorizer decides whether a request's auth context may invoke an action
// requiring one of the given roles. It is a seam: the default implementation
// reproduces the deliberately weak check the API shipped with, and the
// session-backed one can be swapped in without touching call sites.
type Authorizer interface {
	Authorize(auth model.AuthContext, roles ...model.Role) bool
}

// PresenceAuthorizer trusts any request that carries both an id and a
// token. It never consults a session store and ignores roles entirely, so a
// student token passes teacher-gated actions. This is a known trust-boundary
// gap preserved for compatibility, not an oversight — harden by selecting
// the session auth mode instead of changing this check.
type PresenceAuthorizer struct{}

// Authorize implements Authorizer.
func (PresenceAuthorizer) Authorize(auth model.AuthContext, _ ...model.Role) bool {
	return auth.ID != "" && auth.Token != ""
}

// SessionAuthorizer verifies tokens against the Sessions collection. With
// enforceRoles it additionally requires the recorded role to cover the
// action.
type SessionAuthorizer struct {
	sessions     *repository.SessionRepository
	enforceRoles bool
}

// NewSessionAuthorizer creates a SessionAuthorizer.
func NewSessionAuthorizer(sessions *repository.SessionRepository, enforceRoles bool) *SessionAuthorizer {
	return &SessionAuthorizer{sessions: sessions, enforceRoles: enforceRoles}
}

// Authorize implements Authorizer.
func (a *SessionAuthorizer) Authorize(auth model.AuthContext, roles ...model.Role) bool {
	if auth.ID == "" || auth.Token == "" {
		return false
	}
	sess, err := a.sessions.Lookup(auth.Token)
	if err != nil || sess.UserID != auth.ID {
		return false
	}
	if a.enforceRoles && len(roles) > 0 {
		for _, r := range roles {
			if sess.Role == r {
				return true
			}
		}
		return false
	}
	return true
}

// AuthService handles login and per-request authorization.
type AuthService struct {
	students   *repository.StudentRepository
	meta       *repository.MetaRepository
	sessions   *repository.SessionRepository
	authorizer Authorizer
	// recordSessions is on in session auth mode; the trust mode issues
	// tokens bound to nothing, matching the original contract.
	recordSessions bool
	log            zerolog.Logger
}

// NewAuthService creates an AuthService with the authorizer selected by the
// configured auth mode.
func NewAuthService(
	cfg *config.Config,
	students *repository.StudentRepository,
	meta *repository.MetaRepository,
	sessions *repository.SessionRepository,
	log zerolog.Logger,
) *AuthService {
	s := &AuthService{
		students: students,
		meta:     meta,
		sessions: sessions,
		log:      log.With().Str("component", "auth_service").Logger(),
	}
	if cfg.AuthMode == config.AuthModeSession {
		s.authorizer = NewSessionAuthorizer(sessions, cfg.EnforceRoles)
		s.recordSessions = true
	} else {
		s.authorizer = PresenceAuthorizer{}
	}
	return s
}

// Login authenticates either a teacher (shared secret) or a student
// (roster lookup) and issues an opaque token.
//
// The teacher path compares the secret against the single stored
// teacher_secret; the id and class code are accepted but not verified
// against any per-teacher record, so any id with the right secret gets a
// teacher token.
func (s *AuthService) Login(req model.LoginRequest) (*model.LoginResponse, error) {
	if req.Secret != "" {
		return s.loginTeacher(req)
	}
	return s.loginStudent(req)
}

func (s *AuthService) loginTeacher(req model.LoginRequest) (*model.LoginResponse, error) {
	secret, err := s.meta.Get(repository.MetaTeacherSecret)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewCode(response.ErrConfig)
		}
		return nil, err
	}
	if secret == "" {
		return nil, response.NewCode(response.ErrConfig)
	}
	if req.Secret != secret {
		s.log.Warn().Str("id", req.ID).Msg("teacher login with wrong secret")
		return nil, response.NewCode(response.ErrInvalidSecret)
	}

	token, err := s.issueToken(req.ID, model.RoleTeacher)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, Role: model.RoleTeacher, Name: "Teacher"}, nil
}

func (s *AuthService) loginStudent(req model.LoginRequest) (*model.LoginResponse, error) {
	student, err := s.students.Find(req.ID, req.ClassCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewCode(response.ErrStudentNotFound)
		}
		return nil, err
	}

	token, err := s.issueToken(student.StudentID, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, Role: model.RoleStudent, Name: student.Name}, nil
}

func (s *AuthService) issueToken(userID string, role model.Role) (string, error) {
	token := uuid.New().String()
	if s.recordSessions {
		if err := s.sessions.Record(token, userID, role); err != nil {
			s.log.Error().Err(err).Msg("failed to record session")
			return "", err
		}
	}
	return token, nil
}

// Authorize gates every action except login through the configured
// authorizer.
func (s *AuthService) Authorize(auth model.AuthContext, roles ...model.Role) bool {
	return s.authorizer.Authorize(auth, roles...)
}
