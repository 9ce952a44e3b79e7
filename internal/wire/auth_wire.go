package wire

import (
	"business-onboarding/internal/adaptor"
	"business-onboarding/internal/usecase"
	"business-onboarding/pkg/middleware"
	"business-onboarding/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	sessions usecase.SessionService,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(sessions, config.Session.CookieName, log)).Post("/logout", authHandler.Logout)
}
