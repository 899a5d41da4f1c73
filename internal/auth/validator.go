// Package auth provides a bearer-token validator for the resolution
// pipeline. Requests carrying a valid JWT pass; everything else converts
// into an authorization-denied error route before the controller runs.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	rterrors "route-engine/internal/common/errors"
	"route-engine/internal/resolve"
)

// Claims are the JWT claims the engine issues and verifies
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTValidator validates the Authorization header of every request it is
// installed for. Paths listed in Exempt skip validation (health checks,
// login endpoints).
type JWTValidator struct {
	secret []byte
	issuer string

	// Exempt lists path prefixes that bypass validation
	Exempt []string
}

// NewJWTValidator creates a validator over a shared signing secret
func NewJWTValidator(secret, issuer string) *JWTValidator {
	return &JWTValidator{secret: []byte(secret), issuer: issuer}
}

// GenerateToken issues a signed token for a user, valid for 24 hours
func (v *JWTValidator) GenerateToken(username string) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// Validate implements resolve.Validator
func (v *JWTValidator) Validate(ctx context.Context, app *resolve.App) error {
	if app.Request == nil {
		return nil
	}

	for _, prefix := range v.Exempt {
		if strings.HasPrefix(app.Request.URL.Path, prefix) {
			return nil
		}
	}

	header := app.Request.Header.Get("Authorization")
	if header == "" {
		return rterrors.AuthorizationDenied("missing authorization header")
	}

	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return rterrors.AuthorizationDenied("authorization header is not a bearer token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return rterrors.AuthorizationDenied("invalid token")
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return rterrors.AuthorizationDenied("unexpected token issuer")
	}

	return nil
}
