package zone

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) openOp() huma.Operation {
	return huma.Operation{
		OperationID: "zone-open",
		Method:      http.MethodPost,
		Path:        "/api/v1/zones",
		Summary:     "Open a zone, creating it on first use",
		Tags:        []string{"zones"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
