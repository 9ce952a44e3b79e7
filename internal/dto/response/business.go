package response

import "business-onboarding/internal/data/entity"

type BusinessResponse struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
}

func BusinessToResponse(business *entity.Business) *BusinessResponse {
	return &BusinessResponse{
		ID:          business.ID,
		CompanyName: business.CompanyName,
		Email:       business.Email,
	}
}
