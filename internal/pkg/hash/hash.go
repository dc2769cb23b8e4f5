// Package hash provides helpers for hashing and verifying short secrets.
//
// Passcodes are stored as keyed digests only; verification compares the
// plaintext against the stored digest in constant time.
package hash

// Hash produces and verifies keyed digests of plaintext secrets.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}
