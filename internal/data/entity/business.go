package entity

type Business struct {
	Base
	CompanyName string `db:"company_name"`
	Email       string `db:"email"`
	Phone       string `db:"phone"`
	HQ          string `db:"hq"`
	Operations  string `db:"operations"`
	Website     string `db:"website"`
	Details     string `db:"details"`
	Verified    bool   `db:"verified"`
}
