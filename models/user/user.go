package user

import (
	"time"
)

// Role of a caller. Resolved from the users table by verified email;
// identities without a row default to RoleUser.
type Role string

const (
	RoleUser  Role = "user"
	RoleRider Role = "rider"
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleRider, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is a caller identity keyed by verified email. Token issuance and
// verification live outside this service; this table only carries the
// role and profile data needed for authorization and display.
type User struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name  string `gorm:"size:120" json:"name"`
	Role  Role   `gorm:"size:20;not null;default:user" json:"role"`

	LastLogInAt *time.Time `json:"last_log_in_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the User model
func (User) TableName() string {
	return "users"
}
