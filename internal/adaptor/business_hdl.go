package adaptor

import (
	"net/http"

	"business-onboarding/internal/dto/request"
	"business-onboarding/internal/usecase"
	"business-onboarding/pkg/utils"

	"go.uber.org/zap"
)

type BusinessHandler struct {
	service usecase.BusinessService
	log     *zap.Logger
}

func NewBusinessHandler(service usecase.BusinessService, log *zap.Logger) *BusinessHandler {
	return &BusinessHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /business
func (h *BusinessHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBusinessRequest

	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "Business creation")
		return
	}

	utils.ResponseCreated(w, "Business registered", response)
}
