package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec errors
var (
	ErrInvalidPrincipal = errors.New("invalid principal")
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenInvalid     = errors.New("token is invalid")
)

// Principal is the identity resolved from a verified token. Only these two
// fields are ever trusted out of a token.
type Principal struct {
	ID      int64
	IsAdmin bool
}

// Codec signs and verifies bearer tokens carrying a Principal.
type Codec struct {
	secret []byte
}

// NewCodec creates a codec with the given signing secret
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue signs a token embedding exactly the principal's id and admin flag
// plus issue/expiry timestamps.
func (c *Codec) Issue(p Principal, ttl time.Duration) (string, error) {
	if p.ID <= 0 {
		return "", fmt.Errorf("%w: id must be a positive integer", ErrInvalidPrincipal)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"id":      p.ID,
		"isAdmin": p.IsAdmin,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token, returning the embedded principal.
// Expiry maps to ErrTokenExpired; every other failure (wrong secret, wrong
// signing method, malformed structure, missing or mistyped claims) maps to
// ErrTokenInvalid.
func (c *Codec) Verify(tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrTokenExpired
		}
		return Principal{}, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Principal{}, ErrTokenInvalid
	}

	// JSON numbers decode as float64; require an integral positive id.
	rawID, ok := claims["id"].(float64)
	if !ok || rawID <= 0 || rawID != float64(int64(rawID)) {
		return Principal{}, ErrTokenInvalid
	}

	isAdmin, ok := claims["isAdmin"].(bool)
	if !ok {
		return Principal{}, ErrTokenInvalid
	}

	return Principal{ID: int64(rawID), IsAdmin: isAdmin}, nil
}
