package app

import (
	"log/slog"
	"net/http"

	"github.com/saketg0210/autopo-server/internal/transport/http/handler"
	"github.com/saketg0210/autopo-server/internal/transport/http/middleware"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	MaxBodyBytes   int64
}

// NewRouter creates and configures the HTTP router with all application routes.
// Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts *RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	// Liveness
	mux.HandleFunc("GET /api/health", repo.Infra.Health)

	// Proxied operations
	mux.HandleFunc("POST /api/generate", repo.Proxy.Generate)
	mux.HandleFunc("POST /api/analyzeDocument", repo.Proxy.AnalyzeDocument)
	mux.HandleFunc("GET /api/models", repo.Proxy.ListModels)

	// Root returns JSON status
	mux.HandleFunc("GET /", repo.Infra.RootStatus)

	// Middleware chain, applied innermost first. Resulting order outer to
	// inner: CORS, RequestID, RequestLogger, Recover, MaxBody.
	var h http.Handler = mux

	// Body ceiling for base64 document payloads
	h = middleware.MaxBody(opts.MaxBodyBytes)(h)

	// Panic isolation: a failing request must not take the process down
	h = middleware.Recover(logger)(h)

	// Logger sits outside Recover so panicking requests still get a log line
	h = middleware.RequestLogger(logger)(h)

	// Request ID (outside the logger so its lines carry the ID)
	h = middleware.RequestID(h)

	// CORS (outermost so even rejected requests carry the headers)
	h = middleware.CORS(opts.AllowedOrigins)(h)

	return h
}
