package password

import (
	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"
)

// Module provides the bcrypt hasher used for new user profiles.
var Module = fx.Provide(newHasher)

func newHasher() Hasher {
	return NewBcryptHasher(bcrypt.DefaultCost)
}
