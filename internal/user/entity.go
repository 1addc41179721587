// AngelaMos | 2026
// entity.go

package user

import (
	"strings"
	"time"
)

type Role int

const (
	RoleAdmin            Role = 1
	RoleOwner            Role = 2
	RolePropertyManager  Role = 3
	RoleLeasingAgent     Role = 4
	RoleMaintenanceStaff Role = 5
	RoleTenant           Role = 6
	RoleGuest            Role = 7
)

var roleNames = map[Role]string{
	RoleAdmin:            "Admin",
	RoleOwner:            "Property Owner",
	RolePropertyManager:  "Property Manager",
	RoleLeasingAgent:     "Leasing Agent",
	RoleMaintenanceStaff: "Maintenance Staff",
	RoleTenant:           "Tenant",
	RoleGuest:            "Guest",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "Unknown"
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// CanManage reports whether the role may change occupancy or payment status.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleOwner || r == RolePropertyManager
}

type User struct {
	ID           int64      `db:"id"`
	CompanyID    *int64     `db:"company_id"`
	LeaseID      *int64     `db:"lease_id"`
	Username     string     `db:"username"`
	PasswordHash string     `db:"password_hash"`
	PasswordSalt string     `db:"password_salt"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Email        string     `db:"email"`
	Phone        string     `db:"phone"`
	Role         Role       `db:"role"`
	Birthdate    *time.Time `db:"birthdate"`
	CreatedDate  time.Time  `db:"created_date"`
	UpdatedDate  *time.Time `db:"updated_date"`
	Active       bool       `db:"active"`
	IsOwner      bool       `db:"is_owner"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) HasCredentials() bool {
	return u.PasswordHash != "" && u.PasswordSalt != ""
}

// NormalizePhone keeps digits only, the stored phone format.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
