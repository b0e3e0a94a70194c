package zone

import "errors"

var (
	ErrNotFound      = errors.New("zone not found")
	ErrInvalidConfig = errors.New("invalid zone config")
	ErrConflict      = errors.New("zone already exists with another access property")
	ErrForbidden     = errors.New("zone access denied")
	ErrLocalOnly     = errors.New("local-only zones are not stored in the cloud")
)
