package auth

import "github.com/golang-jwt/jwt/v5"

// claims carried by both OAuth tokens and gate session cookies
type Claims struct {
	UserID   string `json:"user_id"`
	Provider string `json:"provider,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
