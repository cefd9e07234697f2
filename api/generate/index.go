package handler

import (
	"net/http"

	"github.com/saketg0210/autopo-server/internal/app"
	proxyhandler "github.com/saketg0210/autopo-server/internal/transport/http/handler/proxy"
)

// entry is assembled once per cold start.
var entry http.HandlerFunc

func init() {
	entry = app.NewFunction(func(h *proxyhandler.Handlers) http.HandlerFunc {
		return h.Generate
	})
}

// Handler is the platform entry point for POST /api/generate.
func Handler(w http.ResponseWriter, r *http.Request) {
	entry(w, r)
}
