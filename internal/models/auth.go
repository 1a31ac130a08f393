package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the payload of an access token issued by the hosted auth provider.
// The subject is the user id that scopes every stored plan.
type AuthClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *AuthClaims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}
