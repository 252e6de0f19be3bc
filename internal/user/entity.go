// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// User mirrors an identity from the external provider. The id is the
// provider's subject and is never generated here.
type User struct {
	ID              string    `db:"id"`
	Email           *string   `db:"email"`
	FirstName       *string   `db:"first_name"`
	LastName        *string   `db:"last_name"`
	ProfileImageURL *string   `db:"profile_image_url"`
	Role            string    `db:"role"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	RoleClient  = "client"
	RoleCompany = "company"
	RoleAdmin   = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleClient, RoleCompany, RoleAdmin:
		return true
	}
	return false
}
