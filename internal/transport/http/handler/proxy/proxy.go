// Package proxy exposes the proxied generation endpoints over HTTP. The
// handlers are thin: decode, call the core service, write the envelope with
// the mirrored upstream status.
package proxy

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/saketg0210/autopo-server/internal/gemini"
	proxysvc "github.com/saketg0210/autopo-server/internal/proxy"
	"github.com/saketg0210/autopo-server/internal/transport/http/middleware"
	"github.com/saketg0210/autopo-server/internal/types"
)

// ModelLister fetches the upstream model catalog. *gemini.Client satisfies it.
type ModelLister interface {
	ListModels(ctx context.Context) (*gemini.Result, error)
}

// Handlers holds the dependencies for proxy HTTP handlers.
type Handlers struct {
	Service *proxysvc.Service
	Models  ModelLister
	Cache   *ristretto.Cache[string, any]
	Logger  *slog.Logger
}

// New creates a new instance of proxy handlers. Cache and Models may be nil;
// the models endpoint then degrades accordingly.
func New(svc *proxysvc.Service, models ModelLister, cache *ristretto.Cache[string, any], logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		Service: svc,
		Models:  models,
		Cache:   cache,
		Logger:  logger,
	}
}

// writeDecodeError maps request body read and decode failures to client errors.
func (h *Handlers) writeDecodeError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		types.WriteError(w, http.StatusRequestEntityTooLarge, types.ErrInvalidRequest("request body too large"))
		return
	}
	types.WriteError(w, http.StatusBadRequest, types.ErrInvalidRequest("invalid request body: "+err.Error()))
}

// writeServiceError maps core service failures onto the error envelope.
// Validation failures become 400s naming the field; everything else is a 500
// carrying the stringified error, logged before it leaves the process.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		types.WriteError(w, http.StatusBadRequest,
			types.NewAPIErrorWithParam(verr.Reason, types.ErrorTypeInvalidRequest, verr.Field))
		return
	}

	h.Logger.Error("proxy failure",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err.Error(),
		"request_id", middleware.GetRequestID(r.Context()),
	)
	types.WriteError(w, http.StatusInternalServerError, types.ErrServer(err.Error()))
}
