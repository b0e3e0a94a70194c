package postgres

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"bookshelf/internal/domain/session"
)

type SessionRepository struct {
	db  DB
	log *slog.Logger
}

func NewSessionRepository(db DB, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log.With("component", "session_repository"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sessions (user_id, token_hash, expires_at)
         VALUES ($1, decode($2, 'hex'), $3)`,
		userID, tokenHash, expiresAt)
	if err != nil {
		r.log.Error("failed to create session", "user_id", userID, "error", err)
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Validate(ctx context.Context, tokenHash string) (int, error) {
	var userID int
	err := r.db.QueryRow(ctx,
		`SELECT user_id FROM sessions
         WHERE token_hash = decode($1, 'hex') AND expires_at > NOW()`,
		tokenHash).Scan(&userID)
	if err != nil {
		if isNoRows(err) {
			return 0, session.ErrInvalidSession
		}
		return 0, fmt.Errorf("validate session: %w", err)
	}
	return userID, nil
}

func (r *SessionRepository) Revoke(ctx context.Context, tokenHash string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM sessions WHERE token_hash = decode($1, 'hex')`, tokenHash)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrInvalidSession
	}
	return nil
}
