package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

// ProviderPassword is the identity provider backed by the store's own accounts.
const ProviderPassword = "password"

var ErrNotSignedIn = errors.New("not signed in, run: bookshelf auth login")

// Authenticator is the part of the store the gate signs in against.
type Authenticator interface {
	Register(ctx context.Context, login, password string) error
	Login(ctx context.Context, login, password string) (string, error)
	SignIn(ctx context.Context, provider, token string) (SignInResult, error)
	SignOut(ctx context.Context) error
	SetSession(session string)
}

// Gate owns the signed-in session. The session is kept on disk so that
// later runs start signed in.
type Gate struct {
	auth Authenticator
	path string
	log  *slog.Logger

	mu      sync.RWMutex
	session *SignInResult
}

// NewGate restores a persisted session from path if one exists and has not
// expired. A broken session file is logged and ignored.
func NewGate(auth Authenticator, path string, log *slog.Logger) *Gate {
	g := &Gate{
		auth: auth,
		path: path,
		log:  log.With("component", "gate"),
	}

	s, err := g.load()
	switch {
	case err != nil:
		g.log.Warn("failed to restore session", "path", path, "error", err)
	case s != nil && time.Now().After(s.ExpiresAt):
		g.log.Info("stored session expired", "expires_at", s.ExpiresAt)
	case s != nil:
		g.session = s
		auth.SetSession(s.Session)
		g.log.Debug("session restored", "user_id", s.User.ID)
	}
	return g
}

// SignIn exchanges an identity token for a session and persists it.
func (g *Gate) SignIn(ctx context.Context, provider, token string) (User, error) {
	res, err := g.auth.SignIn(ctx, provider, token)
	if err != nil {
		g.log.Error("sign-in failed", "provider", provider, "error", err)
		return User{}, err
	}

	if err := g.save(&res); err != nil {
		g.log.Warn("failed to persist session", "path", g.path, "error", err)
	}

	g.mu.Lock()
	g.session = &res
	g.mu.Unlock()
	g.auth.SetSession(res.Session)

	g.log.Info("signed in", "user_id", res.User.ID, "display_name", res.User.DisplayName)
	return res.User, nil
}

// LoginWithPassword gets an identity token for login and signs in with it.
func (g *Gate) LoginWithPassword(ctx context.Context, login, password string) (User, error) {
	token, err := g.auth.Login(ctx, login, password)
	if err != nil {
		g.log.Error("login failed", "login", login, "error", err)
		return User{}, err
	}
	return g.SignIn(ctx, ProviderPassword, token)
}

func (g *Gate) Register(ctx context.Context, login, password string) error {
	if err := g.auth.Register(ctx, login, password); err != nil {
		return err
	}
	g.log.Info("account registered", "login", login)
	return nil
}

// SignOut revokes the session on the store if it can and always forgets it
// locally.
func (g *Gate) SignOut(ctx context.Context) error {
	if !g.SignedIn() {
		return nil
	}

	if err := g.auth.SignOut(ctx); err != nil {
		g.log.Warn("failed to revoke session", "error", err)
	}

	g.mu.Lock()
	g.session = nil
	g.mu.Unlock()
	g.auth.SetSession("")

	if err := os.Remove(g.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}

	g.log.Info("signed out")
	return nil
}

func (g *Gate) SignedIn() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session != nil
}

// User returns the signed-in user, or false when nobody is signed in.
func (g *Gate) User() (User, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.session == nil {
		return User{}, false
	}
	return g.session.User, true
}

func (g *Gate) load() (*SignInResult, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var s SignInResult
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Session == "" {
		return nil, errors.New("session file has no session")
	}
	return &s, nil
}

func (g *Gate) save(s *SignInResult) error {
	if err := os.MkdirAll(filepath.Dir(g.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(g.path, data, 0o600)
}
