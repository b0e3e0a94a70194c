// Package identity issues and verifies the access tokens of the built-in
// identity provider. Clients never look inside a token; they hand it to the
// auth gate, which exchanges it for a session.
package identity

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	DefaultIssuer    = "bookshelf-idp"
	DefaultAudience  = "bookshelf-store"
	ProviderPassword = "password"
)

var (
	ErrInvalidToken        = errors.New("invalid identity token")
	ErrUnsupportedProvider = errors.New("unsupported identity provider")
)

// Claims carried by an access token.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Identity is what a verified token says about its holder.
type Identity struct {
	UserID      int
	DisplayName string
	ExpiresAt   time.Time
}

type Issuer struct {
	secret   []byte
	ttl      time.Duration
	issuer   string
	audience string
	now      func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret:   []byte(secret),
		ttl:      ttl,
		issuer:   DefaultIssuer,
		audience: DefaultAudience,
		now:      time.Now,
	}
}

// Issue signs an HS256 token for the user.
func (i *Issuer) Issue(userID int, name string) (string, time.Time, error) {
	now := i.now().UTC()
	exp := now.Add(i.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, exp, nil
}

// Verify checks signature, issuer, audience and expiry of a token.
func (i *Issuer) Verify(token string) (Identity, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		return Identity{}, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}

	return Identity{
		UserID:      userID,
		DisplayName: claims.Name,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// VerifyFor dispatches on the provider name a client sent along with its token.
func (i *Issuer) VerifyFor(provider, token string) (Identity, error) {
	if provider != ProviderPassword {
		return Identity{}, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}
	return i.Verify(token)
}
