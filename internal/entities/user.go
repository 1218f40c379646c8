package entities

import "time"

// User roles.
const (
	RoleUser  = 0
	RoleAdmin = 1
)

// AdminUserID is the permanent administrator account seeded at first start.
// It can never be deleted.
const AdminUserID uint = 1

// User is a local account stored in the annex database. Languages and Tags
// restrict what the user may see: comma-separated language codes and tag
// names, empty meaning unrestricted.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:100" json:"username"`
	Password  string    `gorm:"size:128" json:"-"` // bcrypt hash
	Role      int       `json:"role"`
	Languages string    `gorm:"size:256" json:"languages"`
	Tags      string    `gorm:"size:1024" json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user has the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
