package adaptor

import (
	"encoding/json"
	"net/http"

	"business-onboarding/internal/usecase"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	Business *BusinessHandler
	OTP      *OTPHandler
	User     *UserHandler
	Auth     *AuthHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Business: NewBusinessHandler(service.Business, log),
		OTP:      NewOTPHandler(service.OTP, service.Session, log),
		User:     NewUserHandler(service.User, log),
		Auth:     NewAuthHandler(service.Auth, service.Session, log),
	}
}

// decodeJSON reads a bounded JSON body, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
