// Package handler composes the HTTP handler groups.
package handler

import (
	"log/slog"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	proxysvc "github.com/saketg0210/autopo-server/internal/proxy"
	"github.com/saketg0210/autopo-server/internal/transport/http/handler/infra"
	"github.com/saketg0210/autopo-server/internal/transport/http/handler/proxy"
)

// Repo composes all domain-specific handlers.
type Repo struct {
	Proxy *proxy.Handlers
	Infra *infra.Handlers
}

// NewRepo creates a new instance of the composed handler repository.
func NewRepo(svc *proxysvc.Service, models proxy.ModelLister, cache *ristretto.Cache[string, any], logger *slog.Logger) *Repo {
	startTime := time.Now()
	return &Repo{
		Proxy: proxy.New(svc, models, cache, logger),
		Infra: infra.New(startTime),
	}
}
