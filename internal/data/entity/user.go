package entity

type UserRole string

const (
	RoleUser         UserRole = "user"
	RoleOrganization UserRole = "organization"
	RoleAdmin        UserRole = "admin"
)

type User struct {
	Base
	Email          string   `db:"email"`
	PasswordHash   string   `db:"password"`
	FullName       *string  `db:"full_name"`
	IsVerified     bool     `db:"is_verified"`
	IsOrganization bool     `db:"is_organization"`
	Role           UserRole `db:"role"`
}
