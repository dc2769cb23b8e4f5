package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

// Generator produces one-time passcodes.
type Generator interface {
	// Generate returns a new passcode as a decimal string.
	Generate() (string, error)
}

// Numeric generates uniformly distributed numeric passcodes in a closed
// range, so every code in [min, max] is equally likely.
type Numeric struct {
	min int64
	max int64
}

// NewNumeric constructs a Numeric generator. If the bounds are not a valid
// range it falls back to six digit codes, 100000 through 999999.
func NewNumeric(minCode, maxCode int64) *Numeric {
	if minCode <= 0 || maxCode <= minCode {
		minCode, maxCode = 100000, 999999
	}

	return &Numeric{min: minCode, max: maxCode}
}

// Generate returns a new passcode drawn from crypto/rand.
func (n *Numeric) Generate() (string, error) {
	span := big.NewInt(n.max - n.min + 1)
	v, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("pkgotp: generate: %w", err)
	}

	return strconv.FormatInt(n.min+v.Int64(), 10), nil
}
