package wire

import (
	"business-onboarding/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBusiness(r chi.Router, businessHandler *adaptor.BusinessHandler) {
	r.Post("/business", businessHandler.Create)
}
