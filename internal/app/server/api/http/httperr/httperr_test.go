package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/domain/book"
	"bookshelf/internal/domain/identity"
	"bookshelf/internal/domain/schema"
	"bookshelf/internal/domain/session"
	"bookshelf/internal/domain/user"
	"bookshelf/internal/domain/zone"
	"bookshelf/internal/utils/logger"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: user.ErrInvalidInput, status: http.StatusBadRequest},
		{err: zone.ErrLocalOnly, status: http.StatusBadRequest},
		{err: schema.ErrUnsupportedFormat, status: http.StatusBadRequest},
		{err: fmt.Errorf("%w: id must be positive", book.ErrInvalidData), status: http.StatusUnprocessableEntity},
		{err: user.ErrInvalidAuth, status: http.StatusUnauthorized},
		{err: identity.ErrInvalidToken, status: http.StatusUnauthorized},
		{err: session.ErrInvalidSession, status: http.StatusUnauthorized},
		{err: zone.ErrForbidden, status: http.StatusForbidden},
		{err: zone.ErrNotFound, status: http.StatusNotFound},
		{err: user.ErrLoginTaken, status: http.StatusConflict},
		{err: zone.ErrConflict, status: http.StatusConflict},
		{err: fmt.Errorf("%w: Book", schema.ErrTypeNotRegistered), status: http.StatusPreconditionFailed},
		{err: errors.New("connection refused"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			var se huma.StatusError
			require.ErrorAs(t, From(logger.Discard(), tt.err), &se)
			assert.Equal(t, tt.status, se.GetStatus())
		})
	}
}

func TestFrom_HidesInternalDetails(t *testing.T) {
	err := From(logger.Discard(), errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	assert.NotContains(t, err.Error(), "10.0.0.5")
}
