package infra

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/saketg0210/autopo-server/internal/version"
)

// RootStatus returns JSON status and version information at /.
func (h *Handlers) RootStatus(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"name":     "autopo-server",
		"version":  version.Version,
		"status":   "running",
		"uptime_s": int64(time.Since(h.StartTime).Seconds()),
		"endpoints": []string{
			"/api/health",
			"/api/generate",
			"/api/analyzeDocument",
			"/api/models",
		},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Health answers liveness probes with a fixed payload.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
