package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashSecret returns a bcrypt digest of secret with a fresh random salt.
// Secrets bcrypt cannot take (longer than 72 bytes) are a validation error.
func HashSecret(secret string, cost int) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: secret too long", common.ErrValidation)
		}
		return nil, err
	}
	return hash, nil
}

// CompareSecret reports whether secret matches hash.
func CompareSecret(hash []byte, secret string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(secret)) == nil
}

// DummyHash returns a valid digest of a random secret at cost. Comparing
// against it costs the same as comparing against a real user's hash.
func DummyHash(cost int) ([]byte, error) {
	s, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("dummy secret: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s), cost)
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	return hash, nil
}
