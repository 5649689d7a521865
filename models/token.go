package models

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT used by the CSE token authentication.
//
// The "sub" claim carries the oneM2M originator the token was issued for.
// When token authentication is enabled, requests must present a token whose
// subject matches their X-M2M-Origin header, unless the subject is the CSE
// originator itself.
type Token struct {
	// Token is the underlying parsed or freshly signed JWT.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard claim set (sub, exp, iat, iss).
	jwt.RegisteredClaims

	// SignedString is the compact JWS form ready for an Authorization header.
	SignedString string `json:"-"`

	// Originator is a cached copy of the "sub" claim.
	Originator string `json:"-"`
}

// GetOriginator returns the originator stored in the subject claim.
func (t *Token) GetOriginator() (string, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting originator from token: %w", err)
	}
	if sub == "" {
		return "", errors.New("token subject is empty")
	}
	return sub, nil
}

// String returns the compact JWS serialization.
func (t *Token) String() string {
	return t.SignedString
}
