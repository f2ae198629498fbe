package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmpty is returned when hashing an empty password.
var ErrEmpty = errors.New("password is empty")

// Hasher turns plain passwords into storable hashes.
type Hasher interface {
	Hash(password string) (string, error)
}

// BcryptHasher hashes with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher falls back to bcrypt.DefaultCost for out of range values.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmpty
	}
	encoded, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
