package response

import (
	"time"

	"business-onboarding/internal/data/entity"
)

type LoginResponse struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfileResponse echoes the identity behind the session.
type ProfileResponse struct {
	Kind      entity.IdentityKind `json:"kind"`
	ID        int64               `json:"id"`
	Email     string              `json:"email"`
	Name      string              `json:"name"`
	Role      string              `json:"role,omitempty"`
	CompanyID int64               `json:"company_id,omitempty"`
	Verified  *bool               `json:"verified,omitempty"`
}
