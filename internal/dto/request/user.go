package request

type CreateUserRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"required,min=7,max=20"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	CompanyID int64  `json:"company_id" validate:"required,gt=0"`
	Role      string `json:"role" validate:"required,min=2,max=50"`
}
