package service

import (
	"errors"
	"fmt"

	tt "task_tracker"
	"task_tracker/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	// Hash returns a salted hash; two calls with the same input never return the same string.
	Hash(plaintext string) (string, error)
	// Verify never fails loudly: a malformed hash is logged and reported as false.
	Verify(plaintext, hash string) bool
}

// BcryptHasher is the bcrypt PasswordHasher.
type BcryptHasher struct {
	cost int
	log  *logger.Logger
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher returns a hasher with the given cost; out-of-range costs fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int, log *logger.Logger) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost, log: log}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: hash password: %w", tt.ErrInternal, err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) && h.log != nil {
		h.log.Errorw("password_verify_error", "err", err)
	}
	return false
}
