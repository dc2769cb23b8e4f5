// Package jwt is helpers for working with JSON Web Tokens (JWT).
//
// It includes a typed Claims wrapper (registered claims + strongly-typed
// payload) and a symmetric HS512 implementation for generating and verifying
// short-lived proof tokens.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSigningMethod is returned when the JWT signing method is not supported.
	ErrInvalidSigningMethod = errors.New("invalid JWT signing method")

	// ErrSigningKeyTooShort is returned when the HS512 signing key is less than 64 bytes.
	ErrSigningKeyTooShort = errors.New("HS512 signing key must be at least 64 bytes (512 bits)")

	// ErrTokenExpired is returned when the JWT token has expired.
	ErrTokenExpired = errors.New("JWT token has expired")

	// ErrInvalidToken is returned when the token is malformed or fails validation.
	ErrInvalidToken = errors.New("invalid token")
)

// JWT defines the minimal operations needed by the app: generate and verify
// a proof token asserting a subject passed a challenge for a purpose.
type JWT interface {
	// Generate creates a signed token for the subject and purpose.
	Generate(subjectID int64, purpose string) (string, error)
	// Verify parses and validates the token and returns claims.
	Verify(tokenStr string) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

// Config defines the inputs for building a JWT implementation.
type Config struct {
	// Secret is the HMAC signing key.
	Secret []byte
	// Issuer is the token issuer value.
	Issuer string
	// Audiences are the accepted token audiences.
	Audiences []string
	// TTL is the token time-to-live.
	TTL time.Duration
	// Clock provides the current time source.
	Clock clocker
	// UUID generates token IDs.
	UUID generator
}

// Claims wraps registered claims with the proof payload.
type Claims struct {
	// RegisteredClaims holds the standard JWT claims.
	jwt.RegisteredClaims
	// SubjectID is the verified subject identifier.
	SubjectID int64 `json:"subject_id,string"`
	// Purpose is the challenge purpose that was proven.
	Purpose string `json:"purpose"`
}
