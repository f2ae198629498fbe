package dto

import "time"

// UserRequest creates a profile.
type UserRequest struct {
	Name     string `json:"user_name" binding:"required"`
	Email    string `json:"user_email" binding:"required,email"`
	Password string `json:"user_password" binding:"required"`
}

// UserResponse describes a profile without credentials.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"user_name"`
	Email     string    `json:"user_email"`
	CreatedAt time.Time `json:"createdAt"`
}
