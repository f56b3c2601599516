package repository

import (
	"time"

	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/store"
)

// Session is one issued token recorded in the Sessions collection. Only the
// opt-in session auth mode writes or reads these rows.
type Session struct {
	Token     string
	UserID    string
	Role      model.Role
	CreatedAt time.Time
}

// SessionRepository persists issued tokens for the session-backed
// authorizer.
type SessionRepository struct {
	store store.TabularStore
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(st store.TabularStore) *SessionRepository {
	return &SessionRepository{store: st}
}

// Record appends a session row for a freshly issued token.
func (r *SessionRepository) Record(token, userID string, role model.Role) error {
	return r.store.AppendRow(SheetSessions, store.Row{
		"token":      token,
		"user_id":    userID,
		"role":       string(role),
		"created_at": time.Now().Format(time.RFC3339),
	})
}

// Lookup returns the session for token, or ErrNotFound.
func (r *SessionRepository) Lookup(token string) (*Session, error) {
	rows, err := r.store.ListRows(SheetSessions)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row["token"] == token {
			created, _ := time.Parse(time.RFC3339, row["created_at"])
			return &Session{
				Token:     row["token"],
				UserID:    row["user_id"],
				Role:      model.Role(row["role"]),
				CreatedAt: created,
			}, nil
		}
	}
	return nil, ErrNotFound
}
