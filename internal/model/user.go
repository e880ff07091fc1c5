package model

import "time"

const (
	UserTypeStandart = "standart"
	UserTypePro      = "pro"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	Type         string    `json:"type"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Identity is the request-scoped result of a verified, non-revoked token.
// It lives in the request context only and is never persisted.
type Identity struct {
	UserID string
	Email  string
}

// TokenClaims is the payload the codec signs into a bearer token.
type TokenClaims struct {
	UserID   string
	Email    string
	IssuedAt time.Time
}
