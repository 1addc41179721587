// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	CompanyID *int64     `json:"company_id,omitempty"`
	LeaseID   *int64     `json:"lease_id,omitempty"`
	Username  string     `json:"username"            validate:"required,min=3,max=100"`
	Password  string     `json:"password"            validate:"required,min=8,max=128"`
	FirstName string     `json:"first_name"          validate:"required,max=100"`
	LastName  string     `json:"last_name"           validate:"required,max=100"`
	Email     string     `json:"email"               validate:"omitempty,email,max=255"`
	Phone     string     `json:"phone"               validate:"omitempty,max=32"`
	Role      Role       `json:"role"                validate:"required,min=1,max=7"`
	Birthdate *time.Time `json:"birthdate,omitempty"`
	IsOwner   bool       `json:"is_owner"`
}

// UpdateUserRequest only touches the fields that are present.
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty"   validate:"omitempty,min=3,max=100"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name,omitempty"  validate:"omitempty,max=100"`
	Email     *string `json:"email,omitempty"      validate:"omitempty,email,max=255"`
	Phone     *string `json:"phone,omitempty"      validate:"omitempty,max=32"`
	Active    *bool   `json:"active,omitempty"`
}

// TenantRequest is a tenant created alongside a lease.
type TenantRequest struct {
	CompanyID   *int64     `json:"company_id,omitempty"`
	Username    string     `json:"username"              validate:"omitempty,max=100"`
	FirstName   string     `json:"first_name"            validate:"required,max=100"`
	LastName    string     `json:"last_name"             validate:"required,max=100"`
	Email       string     `json:"email"                 validate:"omitempty,email,max=255"`
	Phone       string     `json:"phone"                 validate:"omitempty,max=32"`
	Role        Role       `json:"role"`
	Birthdate   *time.Time `json:"birthdate,omitempty"`
	CreatedDate *time.Time `json:"created_date,omitempty"`
	Active      *bool      `json:"active,omitempty"`
	IsOwner     bool       `json:"is_owner"`
}

type UserResponse struct {
	ID          int64      `json:"id"`
	CompanyID   *int64     `json:"company_id,omitempty"`
	LeaseID     *int64     `json:"lease_id,omitempty"`
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Role        Role       `json:"role"`
	RoleName    string     `json:"role_name"`
	Birthdate   *time.Time `json:"birthdate,omitempty"`
	CreatedDate time.Time  `json:"created_date"`
	UpdatedDate *time.Time `json:"updated_date,omitempty"`
	Active      bool       `json:"active"`
	IsOwner     bool       `json:"is_owner"`
}

type SearchParams struct {
	UserID    *int64 `json:"user_id,omitempty"`
	Role      *Role  `json:"role,omitempty"`
	CompanyID *int64 `json:"company_id,omitempty"`
	LeaseID   *int64 `json:"lease_id,omitempty"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		LeaseID:     u.LeaseID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        u.Role,
		RoleName:    u.Role.String(),
		Birthdate:   u.Birthdate,
		CreatedDate: u.CreatedDate,
		UpdatedDate: u.UpdatedDate,
		Active:      u.Active,
		IsOwner:     u.IsOwner,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}

// NewTenant builds a tenant row for leaseID, defaulting Active to true and
// CreatedDate to now when the request leaves them unset.
func NewTenant(req TenantRequest, leaseID int64, now time.Time) User {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	created := now
	if req.CreatedDate != nil && !req.CreatedDate.IsZero() {
		created = *req.CreatedDate
	}

	role := req.Role
	if role == 0 {
		role = RoleTenant
	}

	lease := leaseID
	return User{
		CompanyID:   req.CompanyID,
		LeaseID:     &lease,
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       NormalizePhone(req.Phone),
		Role:        role,
		Birthdate:   req.Birthdate,
		CreatedDate: created,
		Active:      active,
		IsOwner:     req.IsOwner,
	}
}
