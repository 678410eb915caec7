package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionClaims is the signed session record the auth service persists under
// the current-user key and the HTTP shell accepts as a bearer token.
type SessionClaims struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	jwt.RegisteredClaims
}

// User reconstructs the user record embedded in the claims.
func (c *SessionClaims) User() User {
	return User{ID: c.UserID, Username: c.Username, Email: c.Email, Role: c.Role}
}
