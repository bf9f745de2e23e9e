// package: internals/helpers/auth
package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"estatehub_backend/internals/configs"
)

const AccessTokenTTL = 7 * 24 * time.Hour

var ErrMissingSecret = errors.New("JWT secret is not configured")

// TokenSubject is what goes into an access token.
type TokenSubject struct {
	ID           uuid.UUID
	Email        string
	Phone        string
	ActiveRoleID *uuid.UUID
}

// Claims carried by access tokens.
type Claims struct {
	UserID       string `json:"id"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	ActiveRoleID string `json:"activeRoleId,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 access token valid for AccessTokenTTL.
func IssueToken(sub TokenSubject) (string, error) {
	return issueAt(sub, time.Now())
}

func issueAt(sub TokenSubject, now time.Time) (string, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return "", ErrMissingSecret
	}
	claims := Claims{
		UserID: sub.ID.String(),
		Email:  sub.Email,
		Phone:  sub.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		},
	}
	if sub.ActiveRoleID != nil {
		claims.ActiveRoleID = sub.ActiveRoleID.String()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies signature, algorithm and expiry, and returns the user id.
func ParseToken(tokenString string) (*Claims, uuid.UUID, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return nil, uuid.Nil, ErrMissingSecret
	}
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(strings.TrimSpace(tokenString), claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, uuid.Nil, err
	}
	if !tok.Valid {
		return nil, uuid.Nil, errors.New("invalid token")
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, uuid.Nil, errors.New("invalid user id claim")
	}
	return claims, id, nil
}
