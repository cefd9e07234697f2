package proxy

import (
	"net/http"
	"time"
)

// modelsCacheKey is the cache key for the upstream model catalog.
const modelsCacheKey = "models:list"

// modelsCacheTTL bounds how long a fetched catalog is reused.
const modelsCacheTTL = 5 * time.Minute

// ListModels handles GET /api/models. The catalog changes rarely, so
// successful fetches are cached briefly to keep repeated UI loads off the
// upstream. Upstream statuses pass through untouched.
func (h *Handlers) ListModels(w http.ResponseWriter, r *http.Request) {
	if h.Cache != nil {
		if cached, found := h.Cache.Get(modelsCacheKey); found {
			if body, ok := cached.([]byte); ok {
				writeModels(w, http.StatusOK, body, "HIT")
				return
			}
		}
	}

	res, err := h.Models.ListModels(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if res.StatusCode == http.StatusOK && h.Cache != nil {
		h.Cache.SetWithTTL(modelsCacheKey, res.Body, 1, modelsCacheTTL)
	}
	writeModels(w, res.StatusCode, res.Body, "MISS")
}

// writeModels forwards a model catalog body with its cache disposition.
func writeModels(w http.ResponseWriter, status int, body []byte, cacheState string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", cacheState)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
