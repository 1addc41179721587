// AngelaMos | 2026
// entity.go

package company

import (
	"time"
)

type Company struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Address     string     `db:"address"`
	City        string     `db:"city"`
	State       string     `db:"state"`
	ZipCode     string     `db:"zip_code"`
	Phone       string     `db:"phone"`
	Email       string     `db:"email"`
	CreatedDate time.Time  `db:"created_date"`
	UpdatedDate *time.Time `db:"updated_date"`
	Active      bool       `db:"active"`
}

type Address struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type CompanyResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Address     Address    `json:"address"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	CreatedDate time.Time  `json:"created_date"`
	UpdatedDate *time.Time `json:"updated_date,omitempty"`
	Active      bool       `json:"active"`
}

func ToCompanyResponse(c *Company) CompanyResponse {
	return CompanyResponse{
		ID:   c.ID,
		Name: c.Name,
		Address: Address{
			Address: c.Address,
			City:    c.City,
			State:   c.State,
			ZipCode: c.ZipCode,
		},
		Phone:       c.Phone,
		Email:       c.Email,
		CreatedDate: c.CreatedDate,
		UpdatedDate: c.UpdatedDate,
		Active:      c.Active,
	}
}
