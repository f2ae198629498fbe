package repository

import (
	"context"

	"github.com/polkiloo/electrohub/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}
