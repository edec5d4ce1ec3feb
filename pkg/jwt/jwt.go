package jwt

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// TokenTTL is how long a demo-mode token stays valid.
const TokenTTL = 24 * time.Hour

// Claims is what the console signs in demo mode. The subject is the user's
// email, which is also what the factory service puts in "sub".
type Claims struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// GetSecretKey returns the JWT secret from environment or a default
func GetSecretKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "factory-console-demo-secret"
	}
	return []byte(secret)
}

// GenerateToken signs a demo-mode token and returns it with its expiry.
func GenerateToken(userID, email, name string, roles []string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(TokenTTL)

	claims := &Claims{
		UserID: userID,
		Name:   name,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "go-factory-console",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(GetSecretKey())
	return signed, exp, err
}

// ValidateToken parses and validates a demo-mode token
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return GetSecretKey(), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// DecodePayload reads the claims of a token issued by the factory service
// without verifying its signature; the console does not hold that key.
// It is best effort: a malformed token yields (nil, false).
func DecodePayload(tokenString string) (jwt.MapClaims, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, false
	}
	return claims, true
}

// Subject returns the user identity carried by a payload: "sub" or, for
// older tokens, "email".
func Subject(claims jwt.MapClaims) string {
	for _, key := range []string{"sub", "email"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// ExpiresAt returns the "exp" claim, if any.
func ExpiresAt(claims jwt.MapClaims) (time.Time, bool) {
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
