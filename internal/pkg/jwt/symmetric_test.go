package jwt

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeUUID struct{}

func (fakeUUID) Generate() string { return "00000000-0000-7000-8000-000000000001" }

func testSecret() []byte {
	return []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")
}

func testConfig(clock *fakeClock) Config {
	return Config{
		Secret:    testSecret(),
		Issuer:    "goverify",
		Audiences: []string{"goverify-clients"},
		TTL:       15 * time.Minute,
		Clock:     clock,
		UUID:      fakeUUID{},
	}
}

func TestNewHS512RejectsShortSecret(t *testing.T) {
	cfg := testConfig(&fakeClock{now: time.Now()})
	cfg.Secret = []byte("too-short")

	_, err := NewHS512(cfg)
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
	}
}

func TestSymmetricGenerateVerifyRoundtrip(t *testing.T) {
	// Arrange
	clock := &fakeClock{now: time.Now()}
	s, err := NewHS512(testConfig(clock))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// Act
	token, err := s.Generate(42, "verification")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := s.Verify(token)

	// Assert
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.SubjectID != 42 {
		t.Fatalf("expected subject id 42, got %d", claims.SubjectID)
	}
	if claims.Purpose != "verification" {
		t.Fatalf("expected purpose %q, got %q", "verification", claims.Purpose)
	}
	if claims.Subject != "42" {
		t.Fatalf("expected subject %q, got %q", "42", claims.Subject)
	}
	if claims.ID != (fakeUUID{}).Generate() {
		t.Fatalf("unexpected token id %q", claims.ID)
	}
}

func TestSymmetricVerifyRejectsWrongSecret(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	signer, err := NewHS512(testConfig(clock))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	otherCfg := testConfig(clock)
	otherCfg.Secret = []byte("fedcba9876543210fedcba9876543210fedcba9876543210fedcba9876543210")
	verifier, err := NewHS512(otherCfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	token, err := signer.Generate(42, "verification")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestSymmetricVerifyRejectsExpiredToken(t *testing.T) {
	clock := &fakeClock{now: time.Now().Add(-time.Hour)}
	s, err := NewHS512(testConfig(clock))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	token, err := s.Generate(42, "verification")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := s.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestSymmetricVerifyRejectsWrongIssuer(t *testing.T) {
	clock := &fakeClock{now: time.Now()}

	badCfg := testConfig(clock)
	badCfg.Issuer = "someone-else"
	signer, err := NewHS512(badCfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	verifier, err := NewHS512(testConfig(clock))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	token, err := signer.Generate(42, "verification")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected verification to fail for a different issuer")
	}
}
