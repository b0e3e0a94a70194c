package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"bookshelf/internal/domain/identity"
)

// Verifier checks identity tokens issued by a provider.
type Verifier interface {
	VerifyFor(provider, token string) (identity.Identity, error)
}

type Servicer interface {
	SignIn(ctx context.Context, provider, token string) (SignInResult, error)
	Validate(ctx context.Context, token string) (int, error)
	SignOut(ctx context.Context, token string) error
}

type SignInResult struct {
	Session     string
	ExpiresAt   time.Time
	UserID      int
	DisplayName string
}

type Service struct {
	repo     Repository
	verifier Verifier
	ttl      time.Duration
	log      *slog.Logger
	now      func() time.Time
}

func NewService(repo Repository, verifier Verifier, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		verifier: verifier,
		ttl:      ttl,
		log:      log.With("component", "session_service"),
		now:      time.Now,
	}
}

// SignIn exchanges an identity token for a session credential.
func (s *Service) SignIn(ctx context.Context, provider, token string) (SignInResult, error) {
	id, err := s.verifier.VerifyFor(provider, token)
	if err != nil {
		s.log.Debug("identity token rejected", "provider", provider, "error", err)
		return SignInResult{}, err
	}

	session, expiresAt, err := s.create(ctx, id.UserID)
	if err != nil {
		return SignInResult{}, err
	}

	s.log.Info("user signed in", "user_id", id.UserID, "provider", provider)

	return SignInResult{
		Session:     session,
		ExpiresAt:   expiresAt,
		UserID:      id.UserID,
		DisplayName: id.DisplayName,
	}, nil
}

func (s *Service) create(ctx context.Context, userID int) (string, time.Time, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", time.Time{}, fmt.Errorf("generate token: %w", err)
	}

	token := base64.URLEncoding.EncodeToString(tokenBytes)

	expiresAt := s.now().Add(s.ttl)
	if err := s.repo.Create(ctx, userID, hashToken(token), expiresAt); err != nil {
		return "", time.Time{}, fmt.Errorf("save session: %w", err)
	}

	return token, expiresAt, nil
}

func (s *Service) Validate(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, ErrInvalidSession
	}
	return s.repo.Validate(ctx, hashToken(token))
}

// SignOut revokes the session. Unknown sessions are not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if err := s.repo.Revoke(ctx, hashToken(token)); err != nil && !errors.Is(err, ErrInvalidSession) {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
