package request

type CreateBusinessRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=200"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Phone      string `json:"phone" validate:"required,min=7,max=20"`
	HQ         string `json:"hq" validate:"max=200"`
	Operations string `json:"operations" validate:"max=500"`
	Website    string `json:"website" validate:"omitempty,url,max=255"`
	Details    string `json:"details" validate:"max=2000"`
}
