package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims carried by both access and refresh tokens. The two kinds share the
// same shape and signing path; only the configured lifetime differs.
type Claims struct {
	jwt.RegisteredClaims
}
