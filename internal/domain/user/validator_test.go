package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyValidator_ValidateLogin(t *testing.T) {
	v := NewValidator(DefaultPolicy())

	tests := []struct {
		name    string
		login   string
		wantErr bool
	}{
		{name: "valid login", login: "user123"},
		{name: "valid with underscore", login: "user_name"},
		{name: "valid with dash", login: "user-name"},
		{name: "valid with dot", login: "user.name"},
		{name: "cyrillic letters", login: "читатель"},
		{name: "too short", login: "ab", wantErr: true},
		{name: "too long", login: strings.Repeat("a", 33), wantErr: true},
		{name: "space", login: "user name", wantErr: true},
		{name: "at sign", login: "user@name", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateLogin(tt.login)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPolicyValidator_ValidateRegister(t *testing.T) {
	v := NewValidator(DefaultPolicy())

	tests := []struct {
		name        string
		login       string
		password    string
		errContains []string
	}{
		{
			name:     "valid",
			login:    "reader",
			password: "Secret#123",
		},
		{
			name:        "short password",
			login:       "reader",
			password:    "S#1a",
			errContains: []string{"at least 8"},
		},
		{
			name:        "too long for bcrypt",
			login:       "reader",
			password:    "Aa1#" + strings.Repeat("x", 80),
			errContains: []string{"at most 72"},
		},
		{
			name:        "every class missing is reported",
			login:       "reader",
			password:    "        ",
			errContains: []string{"lowercase", "uppercase", "digit", "special"},
		},
		{
			name:        "login and password errors are joined",
			login:       "x",
			password:    "secret#123",
			errContains: []string{"login must be", "uppercase"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRegister(tt.login, tt.password)
			if len(tt.errContains) == 0 {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				for _, s := range tt.errContains {
					assert.Contains(t, err.Error(), s)
				}
			}
		})
	}
}

func TestPolicyValidator_RelaxedPolicy(t *testing.T) {
	v := NewValidator(Policy{MinLoginLen: 1, MaxLoginLen: 8, MinPasswordLen: 4})

	assert.NoError(t, v.ValidateRegister("a", "abcd"))
}
