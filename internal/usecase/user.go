package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/electrohub/internal/domain/errors"
	"github.com/polkiloo/electrohub/internal/domain/model"
	"github.com/polkiloo/electrohub/internal/domain/repository"
	"github.com/polkiloo/electrohub/internal/pkg/password"
)

var validate = validator.New()

// UserUseCase manages customer profiles.
type UserUseCase struct {
	users  repository.UserRepository
	hasher password.Hasher
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(users repository.UserRepository, hasher password.Hasher) *UserUseCase {
	return &UserUseCase{users: users, hasher: hasher}
}

// Create stores a new profile with a hashed password.
func (u *UserUseCase) Create(ctx context.Context, name, email, plain string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || plain == "" {
		return nil, domainErrors.ErrInvalidUser
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, domainErrors.ErrInvalidUser
	}

	hash, err := u.hasher.Hash(plain)
	if err != nil {
		return nil, err
	}

	return u.users.Create(ctx, model.User{Name: name, Email: email, PasswordHash: hash})
}

// Get fetches profile by identifier.
func (u *UserUseCase) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
