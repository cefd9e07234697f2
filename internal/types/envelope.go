package types

import (
	"encoding/json"

	"github.com/saketg0210/autopo-server/internal/extract"
)

// ProxyResponse is the envelope returned for every proxied call, upstream
// failures included. Status repeats the upstream HTTP status, Extracted is
// the unwrapped view of the body, and Raw is the upstream body verbatim.
type ProxyResponse struct {
	Status    int                `json:"status"`
	Extracted extract.Extraction `json:"extracted"`
	Raw       json.RawMessage    `json:"raw"`
}
