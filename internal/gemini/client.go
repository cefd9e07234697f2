package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client issues calls against the Gemini REST API. It deliberately avoids an
// SDK: callers need the upstream status code and body verbatim so they can
// mirror them, which SDK abstractions hide.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient creates a client for the given API root and credential. A zero
// timeout disables the outbound deadline.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Result carries one upstream response: the original status code, the body
// verbatim, and the decoded body.
type Result struct {
	StatusCode int
	Body       []byte
	JSON       any
}

// GenerateContent POSTs a generateContent call for the given model. Upstream
// error statuses are not errors here: the Result carries whatever status and
// JSON body the upstream produced. An error is returned only when the call
// itself fails or the body is not JSON.
func (c *Client) GenerateContent(ctx context.Context, model string, reqBody *GenerateContentRequest) (*Result, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(model), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, c.redact(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// ListModels fetches the model catalog.
func (c *Client) ListModels(ctx context.Context) (*Result, error) {
	endpoint := fmt.Sprintf("%s/models?key=%s", c.baseURL, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, c.redact(fmt.Errorf("create request: %w", err))
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Result, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, c.redact(fmt.Errorf("call upstream: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode upstream response: %w", err)
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       body,
		JSON:       decoded,
	}, nil
}

// redact strips the credential from an error before it can reach logs or
// response envelopes. Transport errors embed the full request URL, key
// included.
func (c *Client) redact(err error) error {
	if c.apiKey == "" {
		return err
	}
	msg := err.Error()
	msg = strings.ReplaceAll(msg, url.QueryEscape(c.apiKey), "***")
	msg = strings.ReplaceAll(msg, c.apiKey, "***")
	return errors.New(msg)
}
