package entity

type User struct {
	Base
	Name         string `db:"name"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
	PasswordHash string `db:"password_digest"`
	Role         string `db:"role"`
	CompanyID    int64  `db:"company_id"`
}
