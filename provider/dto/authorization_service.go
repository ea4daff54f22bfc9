package dto

import "github.com/google/uuid"

type VerifyTokenResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email,omitempty"`
}
