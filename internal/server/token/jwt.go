// Package token issues and verifies signed session tokens (JWT, HS256).
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/julinuzzo19/ecommerce-auth-service/internal/common"
)

const (
	// Issuer identifies this service in the "iss" claim.
	Issuer = "auth-service"
	// Audience identifies the intended consumer in the "aud" claim.
	Audience = "api-gateway"
)

// Claims is the claim set embedded in every session token. Subject carries
// the directory-assigned user id.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Service signs and verifies session tokens with a symmetric secret that is
// loaded once at startup and never rotated at runtime.
type Service struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewService constructs a token service. lifetime bounds the validity window
// of every issued token.
func NewService(secret []byte, lifetime time.Duration) *Service {
	return &Service{secret: secret, lifetime: lifetime, now: time.Now}
}

// Issue signs a token for the given subject. Tokens are self-contained:
// verification needs no database lookup.
func (s *Service) Issue(userID, email, role string) (string, error) {
	now := s.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: email,
		Role:  role,
	})

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify validates signature, expiry, issuer and audience and returns the
// embedded claims. An expired token yields common.ErrTokenExpired; every
// other failure (bad signature, malformed structure, wrong issuer/audience/
// algorithm) yields common.ErrInvalidToken.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !t.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
