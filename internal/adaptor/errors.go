package adaptor

import (
	"errors"
	"net/http"

	"business-onboarding/internal/usecase"
	"business-onboarding/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps the usecase error taxonomy onto HTTP responses.
// Unclassified errors never leak their text.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrDuplicateEmail):
		log.Warn(operation+" failed - duplicate email", zap.Error(err))
		utils.ResponseBadRequest(w, "Email already exists", nil)

	case errors.Is(err, usecase.ErrInvalidCompany):
		log.Warn(operation+" failed - invalid company", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid company_id", nil)

	case errors.Is(err, usecase.ErrCreationFailed):
		log.Warn(operation+" failed - rejected row", zap.Error(err))
		utils.ResponseBadRequest(w, operation+" failed", nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Email is not a registered business")

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials")
		utils.ResponseUnauthorized(w, "Invalid credentials")

	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, "Unauthenticated")

	case errors.Is(err, usecase.ErrRateLimited):
		utils.ResponseTooManyRequests(w, "Too many requests, try again later", 0)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
