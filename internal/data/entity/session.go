package entity

type IdentityKind string

const (
	IdentityBusiness IdentityKind = "business"
	IdentityUser     IdentityKind = "user"
)

// SessionIdentity is the value stored behind a session token.
type SessionIdentity struct {
	Kind  IdentityKind `json:"kind"`
	ID    int64        `json:"id"`
	Email string       `json:"email"`
}
