package models

// Role determines what a user can see and do. Roles are not a
// hierarchy; every permission is checked explicitly against one of
// these three values.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleBoss  Role = "boss"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin || r == RoleBoss
}

// User represents a user in the system. Section is a free-form
// department label used for filtering and assignment dropdowns.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"unique;not null;index"`
	Password string `json:"-" gorm:"not null"`
	Role     Role   `json:"role" gorm:"not null"`
	Section  string `json:"section"`
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}
