package store

import "errors"

var (
	// ErrNotFound marks domain absence: the query ran, zero rows matched.
	// Any other error from a store method is an infrastructure failure.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials is returned by VerifyCredentials when the
	// email exists but the supplied password does not match the hash.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// PasswordHasher is the capability the user store needs from a hashing
// backend, see internal/hash for the bcrypt implementation.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}
