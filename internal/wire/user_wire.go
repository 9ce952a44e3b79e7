package wire

import (
	"business-onboarding/internal/adaptor"
	"business-onboarding/internal/usecase"
	"business-onboarding/pkg/middleware"
	"business-onboarding/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures account creation and the session-protected profile
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	sessions usecase.SessionService,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/users", userHandler.Create)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(sessions, config.Session.CookieName, log)).Get("/profile", userHandler.GetProfile)
}
