package identity

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_IssueAndVerify(t *testing.T) {
	iss := NewIssuer("test-secret", time.Hour)

	token, exp, err := iss.Issue(42, "reader")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	id, err := iss.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, 42, id.UserID)
	assert.Equal(t, "reader", id.DisplayName)
}

func TestIssuer_Verify_Rejects(t *testing.T) {
	iss := NewIssuer("test-secret", time.Hour)
	valid, _, err := iss.Issue(42, "reader")
	require.NoError(t, err)

	expired := NewIssuer("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.Issue(42, "reader")
	require.NoError(t, err)

	otherKey, _, err := NewIssuer("another-secret", time.Hour).Issue(42, "reader")
	require.NoError(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    "someone-else",
			Audience:  jwt.ClaimStrings{DefaultAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	foreignToken, err := foreign.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	badSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-number",
			Issuer:    DefaultIssuer,
			Audience:  jwt.ClaimStrings{DefaultAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	badSubjectToken, err := badSubject.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
		{name: "expired", token: expiredToken},
		{name: "wrong key", token: otherKey},
		{name: "wrong issuer", token: foreignToken},
		{name: "non numeric subject", token: badSubjectToken},
		{name: "tampered", token: valid + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := iss.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestIssuer_VerifyFor(t *testing.T) {
	iss := NewIssuer("test-secret", time.Hour)
	token, _, err := iss.Issue(1, "reader")
	require.NoError(t, err)

	_, err = iss.VerifyFor("hms-account", token)
	assert.ErrorIs(t, err, ErrUnsupportedProvider)

	id, err := iss.VerifyFor(ProviderPassword, token)
	require.NoError(t, err)
	assert.Equal(t, 1, id.UserID)
}
