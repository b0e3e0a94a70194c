package postgres

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"bookshelf/internal/domain/user"
)

type UserRepository struct {
	db  DB
	log *slog.Logger
}

func NewUserRepository(db DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log.With("component", "user_repository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, login, passwordHash string) (int, error) {
	var userID int
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (login, password_hash) VALUES ($1, $2) RETURNING id`,
		login, passwordHash).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, user.ErrLoginTaken
		}
		r.log.Error("failed to create user", "login", login, "error", err)
		return 0, fmt.Errorf("create user: %w", err)
	}
	return userID, nil
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx,
		`SELECT id, login, password_hash, created_at FROM users WHERE login = $1`, login).
		Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}
