// Package auth verifies the auth_token cookie and scopes requests to a tenant.
package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie carrying the signed token.
const CookieName = "auth_token"

// Claims are the tenant claims embedded in the auth token.
type Claims struct {
	CompanyID  int64 `json:"companyId"`
	EmployeeID int64 `json:"employeeId"`
	jwt.RegisteredClaims
}

var (
	// ErrTokenInvalid covers malformed, expired or badly signed tokens.
	ErrTokenInvalid = errors.New("auth: invalid token")
	// ErrTokenMissing indicates no auth_token cookie was presented.
	ErrTokenMissing = errors.New("auth: token missing")
)

// TokenFromRequest extracts the raw token from the auth_token cookie.
func TokenFromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", ErrTokenMissing
	}
	return cookie.Value, nil
}

// SignToken issues an HS256 token for the given tenant scope. Token issuance
// lives in a separate identity service; this helper exists for tooling and
// tests.
func SignToken(secret string, companyID, employeeID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token string and returns its claims.
func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("auth: unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.CompanyID <= 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
