package adaptor

import (
	"net/http"

	"business-onboarding/internal/dto/request"
	"business-onboarding/internal/dto/response"
	"business-onboarding/internal/usecase"
	"business-onboarding/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service  usecase.AuthService
	sessions usecase.SessionService
	log      *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, sessions usecase.SessionService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		sessions: sessions,
		log:      log,
	}
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	session, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	http.SetCookie(w, h.sessions.Cookie(session))
	utils.ResponseSuccess(w, "Login successful", response.LoginResponse{
		UserID:    session.Identity.ID,
		Email:     session.Identity.Email,
		ExpiresAt: session.ExpiresAt,
	})
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := utils.GetTokenFromContext(r.Context())

	if err := h.service.Logout(r.Context(), token); err != nil {
		handleServiceError(w, h.log, err, "logout")
		return
	}

	http.SetCookie(w, h.sessions.ClearCookie())
	utils.ResponseSuccess(w, "Logout successful", nil)
}
