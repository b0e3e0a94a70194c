package user

import (
	"time"

	"bookshelf/internal/domain/user"
)

type registerInput struct {
	Body user.Credentials
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     int    `json:"user_id"`
	Status string `json:"status" example:"Ok"`
}

type loginInput struct {
	Body user.Credentials
}

type loginOutput struct {
	Body LoginResponse
}

// LoginResponse carries the identity token the client exchanges for a session.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
