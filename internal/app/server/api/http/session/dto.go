package session

import "time"

type signInInput struct {
	Body SignInRequest
}

type SignInRequest struct {
	Provider string `json:"provider" enum:"password" doc:"Identity provider that issued the token"`
	Token    string `json:"token" minLength:"1"`
}

type signInOutput struct {
	Body SignInResponse
}

type SignInResponse struct {
	Session   string    `json:"session"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

type UserInfo struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
}
