package dto

import "github.com/google/uuid"

type CreateUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	PublicAlias string `json:"public_alias"`
	OptIn       bool   `json:"opt_in_public_analysis"`
}

type SetOptInRequest struct {
	OptIn *bool `json:"opt_in_public_analysis" binding:"required"`
}

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Alias       string    `json:"alias"`
	OptIn       bool      `json:"opt_in_public_analysis"`
	CreatedAt   string    `json:"created_at"`
}
