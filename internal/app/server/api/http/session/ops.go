package session

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) signInOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-signin",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/signin",
		Summary:     "Exchange an identity token for a session",
		Tags:        []string{"auth"},
		Middlewares: h.public,
	}
}

func (h *Handler) signOutOp() huma.Operation {
	return huma.Operation{
		OperationID:   "auth-signout",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/signout",
		Summary:       "Revoke the current session",
		Tags:          []string{"auth"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   h.private,
	}
}
