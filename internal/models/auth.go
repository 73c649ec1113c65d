package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries the authenticated student identity inside access tokens.
type JWTClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
