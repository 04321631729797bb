package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"melodymesh/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type jwtSigner struct {
	secret []byte
}

// NewJWTSigner returns a signer that both issues and verifies HS256 session
// tokens carrying the account's username (subject) and role.
func NewJWTSigner(secret string) *jwtSigner {
	return &jwtSigner{secret: []byte(secret)}
}

// Issue implements domain.TokenIssuer.
func (s *jwtSigner) Issue(username, role string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify implements domain.TokenVerifier.
func (s *jwtSigner) Verify(tokenString string) (*domain.TokenClaims, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return &domain.TokenClaims{Username: claims.Subject, Role: claims.Role}, nil
}
