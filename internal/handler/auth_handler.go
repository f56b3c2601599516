package handler

import (
	"encoding/json"

	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/service"
)

// AuthHandler exposes the login action.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles the "login" action. It is the only action reachable
// without auth.
func (h *AuthHandler) Login(_ model.AuthContext, payload json.RawMessage) (interface{}, error) {
	var req model.LoginRequest
	if err := bind(payload, &req); err != nil {
		return nil, err
	}
	return h.authService.Login(req)
}
