package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID:   "user-register",
		Method:        http.MethodPost,
		Path:          "/api/v1/user/register",
		Summary:       "Register a user with the identity provider",
		Tags:          []string{"identity"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-login",
		Method:      http.MethodPost,
		Path:        "/api/v1/user/login",
		Summary:     "Log in and receive an identity token",
		Tags:        []string{"identity"},
		Middlewares: h.middleware,
	}
}
