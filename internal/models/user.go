package models

// UserRole represents the two roles the form builder distinguishes.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// User is the signed-in identity. There is no password field here: the mock
// backend keeps credentials to itself and only ever hands out this record.
type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
}
