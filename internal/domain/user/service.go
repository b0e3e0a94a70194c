package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, login, password string) (int, error)
	Authenticate(ctx context.Context, login, password string) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	cost      int
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		cost:      bcrypt.DefaultCost,
		log:       log.With("component", "user_service"),
	}
}

func (s *Service) Register(ctx context.Context, login, password string) (int, error) {
	if err := s.validator.ValidateRegister(login, password); err != nil {
		s.log.Debug("validation failed", "login", login, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.repo.Create(ctx, login, string(hash))
	if err != nil {
		if errors.Is(err, ErrLoginTaken) {
			return 0, ErrLoginTaken
		}
		s.log.Error("failed to create user", "login", login, "error", err)
		return 0, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", id)

	return id, nil
}

// Authenticate does not tell unknown logins apart from wrong passwords.
func (s *Service) Authenticate(ctx context.Context, login, password string) (User, error) {
	if err := s.validator.ValidateLogin(login); err != nil {
		return User{}, ErrInvalidAuth
	}

	u, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("failed to find user", "login", login, "error", err)
		}
		return User{}, ErrInvalidAuth
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidAuth
	}

	return u, nil
}
