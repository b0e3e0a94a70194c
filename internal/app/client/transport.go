package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"bookshelf/internal/domain/book"
	"bookshelf/internal/domain/schema"
	"bookshelf/internal/domain/zone"
)

const userAgent = "Bookshelf-Client/1.0"

// APIError is a non-2xx answer of the store.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("server error %d", e.StatusCode)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// SignInResult is what the store returns for a token exchange.
type SignInResult struct {
	Session   string    `json:"session"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type User struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
}

// Transport talks JSON over HTTP to the store service.
type Transport struct {
	client  *http.Client
	baseURL string
	log     *slog.Logger

	mu      sync.RWMutex
	session string
}

func NewTransport(baseURL string, timeout time.Duration, log *slog.Logger) *Transport {
	return &Transport{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		baseURL: baseURL,
		log:     log.With("component", "transport"),
	}
}

// SetSession sets the bearer credential sent with every request.
func (t *Transport) SetSession(session string) {
	t.mu.Lock()
	t.session = session
	t.mu.Unlock()
}

func (t *Transport) Health(ctx context.Context) error {
	return t.do(ctx, http.MethodGet, "/api/v1/health", nil, nil)
}

// Register creates an account at the identity provider.
func (t *Transport) Register(ctx context.Context, login, password string) error {
	return t.do(ctx, http.MethodPost, "/api/v1/user/register", credentials(login, password), nil)
}

// Login returns an identity token for the account.
func (t *Transport) Login(ctx context.Context, login, password string) (string, error) {
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := t.do(ctx, http.MethodPost, "/api/v1/user/login", credentials(login, password), &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (t *Transport) SignIn(ctx context.Context, provider, token string) (SignInResult, error) {
	var res SignInResult
	err := t.do(ctx, http.MethodPost, "/api/v1/auth/signin",
		map[string]string{"provider": provider, "token": token}, &res)
	return res, err
}

func (t *Transport) SignOut(ctx context.Context) error {
	return t.do(ctx, http.MethodPost, "/api/v1/auth/signout", nil, nil)
}

func (t *Transport) RegisterSchema(ctx context.Context, info schema.ObjectTypeInfo) error {
	var res schema.RegisterResult
	if err := t.do(ctx, http.MethodPost, "/api/v1/schema", info, &res); err != nil {
		return err
	}
	t.log.Debug("schema registered", "created", res.Created, "upgraded", res.Upgraded, "unchanged", res.Unchanged)
	return nil
}

func (t *Transport) OpenZone(ctx context.Context, cfg zone.Config) error {
	return t.do(ctx, http.MethodPost, "/api/v1/zones", cfg, nil)
}

// Query returns a snapshot of every book in the zone.
func (t *Transport) Query(ctx context.Context, zoneName string) (*Snapshot, error) {
	var resp struct {
		Books []book.Book `json:"books"`
	}
	if err := t.do(ctx, http.MethodGet, booksPath(zoneName), nil, &resp); err != nil {
		return nil, err
	}
	return NewSnapshot(resp.Books), nil
}

func (t *Transport) Upsert(ctx context.Context, zoneName string, books []book.Book) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	err := t.do(ctx, http.MethodPut, booksPath(zoneName), map[string]any{"books": books}, &resp)
	return resp.Count, err
}

func (t *Transport) Delete(ctx context.Context, zoneName string, ids []int) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	err := t.do(ctx, http.MethodPost, booksPath(zoneName)+"/delete", map[string]any{"ids": ids}, &resp)
	return resp.Count, err
}

func booksPath(zoneName string) string {
	return "/api/v1/zones/" + url.PathEscape(zoneName) + "/books"
}

func credentials(login, password string) map[string]string {
	return map[string]string{"login": login, "password": password}
}

func (t *Transport) do(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)

	t.mu.RLock()
	if t.session != "" {
		req.Header.Set("Authorization", "Bearer "+t.session)
	}
	t.mu.RUnlock()

	t.log.Debug("sending request", "method", method, "path", path, "request_id", requestID)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var problem struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(data, &problem)
		return &APIError{StatusCode: resp.StatusCode, Detail: problem.Detail}
	}

	if result != nil && len(data) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
