package session

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidSession = errors.New("invalid session")
)

type Repository interface {
	Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error
	// Validate returns ErrInvalidSession for unknown, revoked or expired hashes.
	Validate(ctx context.Context, tokenHash string) (int, error)
	Revoke(ctx context.Context, tokenHash string) error
}
