package proxy

import (
	"encoding/json"
	"net/http"

	"github.com/saketg0210/autopo-server/internal/transport/http/handler/shared"
	"github.com/saketg0210/autopo-server/internal/types"
)

// AnalyzeDocument handles POST /api/analyzeDocument: a base64 document plus
// optional context text in, one envelope out.
func (h *Handlers) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	resp, err := h.Service.AnalyzeDocument(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	shared.WriteJSON(w, resp, resp.Status)
}
