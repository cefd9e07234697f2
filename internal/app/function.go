package app

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/saketg0210/autopo-server/internal/config"
	"github.com/saketg0210/autopo-server/internal/gemini"
	proxysvc "github.com/saketg0210/autopo-server/internal/proxy"
	"github.com/saketg0210/autopo-server/internal/tokenizer"
	"github.com/saketg0210/autopo-server/internal/transport/http/handler/proxy"
	"github.com/saketg0210/autopo-server/internal/transport/http/middleware"
	"github.com/saketg0210/autopo-server/internal/types"
)

// NewFunction assembles one proxy operation as a stateless, per-route entry
// point of the kind serverless platforms invoke. Unlike the process server,
// a missing credential is not fatal here: by the time the function runs the
// platform has already accepted the request, so the failure has to travel
// back as an error response.
func NewFunction(op func(*proxy.Handlers) http.HandlerFunc) http.HandlerFunc {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Load()

	client := gemini.NewClient(cfg.BaseURL, cfg.APIKey, cfg.UpstreamTimeout)
	svc := proxysvc.NewService(client, tokenizer.New(), logger, cfg.DefaultModel)
	inner := op(proxy.New(svc, client, nil, logger))

	guarded := middleware.Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := cfg.Validate(); err != nil {
			types.WriteError(w, http.StatusInternalServerError,
				types.ErrServer("server configuration error: "+err.Error()))
			return
		}
		inner(w, r)
	}))

	return func(w http.ResponseWriter, r *http.Request) {
		middleware.SetCORSHeaders(w, r.Header.Get("Origin"), cfg.AllowedOrigins)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST, OPTIONS")
			types.WriteError(w, http.StatusMethodNotAllowed,
				types.ErrInvalidRequest("method not allowed, use POST"))
			return
		}
		guarded.ServeHTTP(w, r)
	}
}
