package user

import "time"

type User struct {
	ID           int
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}

// DisplayName is what clients greet the user with.
func (u User) DisplayName() string {
	return u.Login
}

type Credentials struct {
	Login    string `json:"login" minLength:"3" maxLength:"32"`
	Password string `json:"password" minLength:"8" maxLength:"72"`
}
