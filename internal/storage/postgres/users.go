package postgres

import (
	"context"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/electrohub/internal/domain/errors"
	"github.com/polkiloo/electrohub/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	const query = `INSERT INTO users (id, user_name, user_email, password_hash) VALUES ($1, $2, $3, $4) RETURNING created_at`
	err := r.storage.pool.QueryRow(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT id::text, user_name, user_email, password_hash, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if isNoMatch(err) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
