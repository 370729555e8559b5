package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinHashCost is the lowest bcrypt work factor accepted for the configured
// admin password hash.
const MinHashCost = 10

// Verifier checks submitted credentials against the single configured admin
// identity. The password hash is produced out-of-band (e.g. with the bcrypt
// CLI) and supplied via configuration; the verifier never stores or logs a
// raw password.
type Verifier struct {
	username     string
	passwordHash []byte
	decoyHash    []byte
}

// NewVerifier creates a verifier for the configured admin credentials. It
// validates that the stored hash is a bcrypt hash with an adequate cost and
// precomputes a decoy hash at the same cost, so verification performs the
// same amount of work whether or not the username matches.
func NewVerifier(username, passwordHash string) (*Verifier, error) {
	if username == "" {
		return nil, fmt.Errorf("admin username must not be empty")
	}

	cost, err := bcrypt.Cost([]byte(passwordHash))
	if err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}
	if cost < MinHashCost {
		return nil, fmt.Errorf("admin password hash cost %d is below minimum %d", cost, MinHashCost)
	}

	decoy := make([]byte, 32)
	if _, err := rand.Read(decoy); err != nil {
		return nil, fmt.Errorf("failed to generate decoy secret: %w", err)
	}
	decoyHash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(decoy)), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to generate decoy hash: %w", err)
	}

	return &Verifier{
		username:     username,
		passwordHash: []byte(passwordHash),
		decoyHash:    decoyHash,
	}, nil
}

// Verify reports whether the submitted credentials match the configured admin
// identity. On username mismatch the password is still compared against the
// decoy hash, keeping the cost of the call independent of username validity.
// Malformed passwords (including ones over bcrypt's length limit) are
// treated as non-matching, never as an error.
func (v *Verifier) Verify(username, password string) bool {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1

	hash := v.decoyHash
	if usernameMatch {
		hash = v.passwordHash
	}

	passwordMatch := bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil

	return usernameMatch && passwordMatch
}
