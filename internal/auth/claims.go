package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Portal roles. Every authenticated principal carries exactly one.
const (
	RoleFarmer    = "farmer"
	RoleAuditor   = "auditor"
	RoleCommittee = "committee"
	RoleAdmin     = "admin"
)

const issuer = "gap-portal"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
	Name string `json:"name"`
}

// Principal is the authenticated user attached to each request. Screens and
// services receive it explicitly instead of reading ambient session state.
type Principal struct {
	ID   uint
	Name string
	Role string
}

// NewClaims builds the claims for an authenticated account.
func NewClaims(accountID uint, name, role string, ttl time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(accountID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
		Name: name,
	}
}

// Sign produces the signed HS256 token string for the claims.
func Sign(claims *Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return ss, nil
}

// Parse verifies a token string and returns its claims.
func Parse(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Principal converts the claims into the request principal.
func (c *Claims) Principal() (Principal, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}
	return Principal{ID: uint(id), Name: c.Name, Role: c.Role}, nil
}
