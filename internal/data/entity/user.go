package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	Base
	Name  string   `db:"name"`
	Email string   `db:"email"`
	Phone *string  `db:"phone"`
	Role  UserRole `db:"role"`
	Image *string  `db:"image"`
}
