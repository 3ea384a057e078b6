package user

import (
	"time"

	"localwear-be/internal/auth"
)

type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash *string
	GoogleID     *string
	Role         auth.Role
	Address      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) Principal() auth.Principal {
	return auth.Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// GoogleIdentity is the verified subset of a Google ID token payload.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

type AuthResult struct {
	Token string
	User  *User
}
