package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"

	"bookshelf/internal/domain/session"
)

const keyPrefix = "bookshelf:session:"

// SessionRepository keeps sessions in Redis, expiring them with key TTLs.
type SessionRepository struct {
	client *redis.Client
	log    *slog.Logger
}

func New(ctx context.Context, addr, password string, log *slog.Logger) (*SessionRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewSessionRepository(client, log), nil
}

func NewSessionRepository(client *redis.Client, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		client: client,
		log:    log.With("component", "redis_session_repository"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("%w: already expired", session.ErrInvalidSession)
	}
	if err := r.client.Set(ctx, keyPrefix+tokenHash, userID, ttl).Err(); err != nil {
		r.log.Error("failed to create session", "user_id", userID, "error", err)
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Validate(ctx context.Context, tokenHash string) (int, error) {
	val, err := r.client.Get(ctx, keyPrefix+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return 0, session.ErrInvalidSession
	}
	if err != nil {
		return 0, fmt.Errorf("validate session: %w", err)
	}

	userID, err := strconv.Atoi(val)
	if err != nil {
		r.log.Warn("corrupt session value", "error", err)
		return 0, session.ErrInvalidSession
	}
	return userID, nil
}

func (r *SessionRepository) Revoke(ctx context.Context, tokenHash string) error {
	n, err := r.client.Del(ctx, keyPrefix+tokenHash).Result()
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if n == 0 {
		return session.ErrInvalidSession
	}
	return nil
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *SessionRepository) Close() error {
	return r.client.Close()
}
