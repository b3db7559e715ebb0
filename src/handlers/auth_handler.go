// backend/src/handlers/auth_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/username/prosper/backend/src/config"
	"github.com/username/prosper/backend/src/logger"
	"github.com/username/prosper/backend/src/security"
	"github.com/username/prosper/backend/src/utils"
)

type AuthHandler struct {
	authService *security.AuthService
}

func NewAuthHandler(authService *security.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// LoginHandler checks the owner password and issues a session token.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.authService.CheckPassword(config.Cfg.OwnerPasswordHash, req.Password); err != nil {
		logger.FromContext(r.Context()).Warn("Login failed: password mismatch")
		utils.SendJSONError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, expiresAt, err := h.authService.GenerateToken()
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to generate session token", "error", err)
		utils.SendJSONError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	utils.SendJSON(w, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, http.StatusOK)
}
