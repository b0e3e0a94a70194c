// Package httperr maps domain errors to huma status errors.
package httperr

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"bookshelf/internal/domain/book"
	"bookshelf/internal/domain/identity"
	"bookshelf/internal/domain/schema"
	"bookshelf/internal/domain/session"
	"bookshelf/internal/domain/user"
	"bookshelf/internal/domain/zone"
)

// From converts err into a huma.StatusError. Unknown errors become a 500
// and are logged, the client only sees a generic message.
func From(log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, zone.ErrInvalidConfig),
		errors.Is(err, zone.ErrLocalOnly),
		errors.Is(err, schema.ErrUnsupportedFormat),
		errors.Is(err, schema.ErrInvalidSchema),
		errors.Is(err, identity.ErrUnsupportedProvider):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, book.ErrInvalidData):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, user.ErrInvalidAuth),
		errors.Is(err, identity.ErrInvalidToken),
		errors.Is(err, session.ErrInvalidSession):
		return huma.Error401Unauthorized(err.Error())
	case errors.Is(err, zone.ErrForbidden):
		return huma.Error403Forbidden(err.Error())
	case errors.Is(err, zone.ErrNotFound),
		errors.Is(err, book.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, user.ErrLoginTaken),
		errors.Is(err, zone.ErrConflict):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, schema.ErrTypeNotRegistered):
		return huma.Error412PreconditionFailed(err.Error())
	}

	log.Error("unhandled error", "error", err)
	return huma.Error500InternalServerError("internal error")
}
