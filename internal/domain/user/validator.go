package user

import (
	"errors"
	"fmt"
	"unicode"
)

// Policy describes what a valid login and password look like.
type Policy struct {
	MinLoginLen    int
	MaxLoginLen    int
	MinPasswordLen int
	MaxPasswordLen int
	RequireLower   bool
	RequireUpper   bool
	RequireDigit   bool
	RequireSpecial bool
}

// DefaultPolicy is used by the server. MaxPasswordLen is bcrypt's input limit.
func DefaultPolicy() Policy {
	return Policy{
		MinLoginLen:    3,
		MaxLoginLen:    32,
		MinPasswordLen: 8,
		MaxPasswordLen: 72,
		RequireLower:   true,
		RequireUpper:   true,
		RequireDigit:   true,
		RequireSpecial: true,
	}
}

type Validator interface {
	ValidateRegister(login, password string) error
	ValidateLogin(login string) error
}

// PolicyValidator checks credentials against a Policy.
type PolicyValidator struct {
	policy Policy
}

func NewValidator(p Policy) *PolicyValidator {
	return &PolicyValidator{policy: p}
}

func (v *PolicyValidator) ValidateRegister(login, password string) error {
	return errors.Join(v.ValidateLogin(login), v.validatePassword(password))
}

func (v *PolicyValidator) ValidateLogin(login string) error {
	n := len([]rune(login))
	if n < v.policy.MinLoginLen || n > v.policy.MaxLoginLen {
		return fmt.Errorf("login must be %d to %d characters long", v.policy.MinLoginLen, v.policy.MaxLoginLen)
	}

	for _, r := range login {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return fmt.Errorf("login may contain only letters, digits and '_', '-', '.'")
		}
	}

	return nil
}

func (v *PolicyValidator) validatePassword(password string) error {
	if len(password) < v.policy.MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", v.policy.MinPasswordLen)
	}
	if v.policy.MaxPasswordLen > 0 && len(password) > v.policy.MaxPasswordLen {
		return fmt.Errorf("password must be at most %d bytes", v.policy.MaxPasswordLen)
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}

	var missing []error
	if v.policy.RequireLower && !lower {
		missing = append(missing, errors.New("password needs a lowercase letter"))
	}
	if v.policy.RequireUpper && !upper {
		missing = append(missing, errors.New("password needs an uppercase letter"))
	}
	if v.policy.RequireDigit && !digit {
		missing = append(missing, errors.New("password needs a digit"))
	}
	if v.policy.RequireSpecial && !special {
		missing = append(missing, errors.New("password needs a special character"))
	}

	return errors.Join(missing...)
}
