package adaptor

import (
	"net/http"

	"business-onboarding/internal/dto/request"
	"business-onboarding/internal/dto/response"
	"business-onboarding/internal/usecase"
	"business-onboarding/pkg/utils"

	"go.uber.org/zap"
)

type OTPHandler struct {
	service  usecase.OTPService
	sessions usecase.SessionService
	log      *zap.Logger
}

func NewOTPHandler(service usecase.OTPService, sessions usecase.SessionService, log *zap.Logger) *OTPHandler {
	return &OTPHandler{
		service:  service,
		sessions: sessions,
		log:      log,
	}
}

// Generate handles POST /generate-otp
func (h *OTPHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateOTPRequest

	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	challenge, err := h.service.GenerateChallenge(r.Context(), req.Email)
	if err != nil {
		handleServiceError(w, h.log, err, "generate OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP generated", response.GenerateOTPResponse{
		Email:     challenge.Email,
		OTP:       challenge.OTP,
		ExpiresAt: challenge.ExpiresAt,
	})
}

// Verify handles POST /verify-otp. Failed checks are 200 with valid=false.
func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest

	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.VerifyChallenge(r.Context(), req.Email, req.OTP)
	if err != nil {
		handleServiceError(w, h.log, err, "verify OTP")
		return
	}

	if result.Session != nil {
		http.SetCookie(w, h.sessions.Cookie(result.Session))
	}

	utils.ResponseSuccess(w, result.Message(), response.VerifyOTPResponse{
		Email:   req.Email,
		Valid:   result.Valid,
		Message: result.Message(),
	})
}
