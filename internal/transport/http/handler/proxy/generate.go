package proxy

import (
	"encoding/json"
	"net/http"

	"github.com/saketg0210/autopo-server/internal/transport/http/handler/shared"
	"github.com/saketg0210/autopo-server/internal/types"
)

// Generate handles POST /api/generate: one prompt in, one envelope out. The
// response status repeats whatever the upstream returned.
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	resp, err := h.Service.Generate(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	shared.WriteJSON(w, resp, resp.Status)
}
