package schema

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID: "schema-register",
		Method:      http.MethodPost,
		Path:        "/api/v1/schema",
		Summary:     "Register object types",
		Description: "Idempotent. Types stored with the same or a newer version are left unchanged.",
		Tags:        []string{"schema"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
