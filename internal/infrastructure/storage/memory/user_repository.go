// Package memory keeps every repository in process memory. It backs local
// runs and API tests.
package memory

import (
	"context"
	"sync"
	"time"

	"bookshelf/internal/domain/user"
)

type UserRepository struct {
	mu     sync.RWMutex
	nextID int
	users  map[string]user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]user.User)}
}

func (r *UserRepository) Create(_ context.Context, login, passwordHash string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[login]; ok {
		return 0, user.ErrLoginTaken
	}
	r.nextID++
	r.users[login] = user.User{
		ID:           r.nextID,
		Login:        login,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	return r.nextID, nil
}

func (r *UserRepository) FindByLogin(_ context.Context, login string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[login]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
