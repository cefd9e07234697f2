package proxy

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/saketg0210/autopo-server/internal/gemini"
	proxysvc "github.com/saketg0210/autopo-server/internal/proxy"
)

// envelope mirrors the response body shape for assertions.
type envelope struct {
	Status    int `json:"status"`
	Extracted struct {
		Raw    any     `json:"raw"`
		Text   *string `json:"text"`
		Parsed any     `json:"parsed"`
	} `json:"extracted"`
	Raw json.RawMessage `json:"raw"`
}

type apiError struct {
	Error struct {
		Message string  `json:"message"`
		Type    string  `json:"type"`
		Param   *string `json:"param"`
	} `json:"error"`
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newHandlers wires real handlers against a canned upstream.
func newHandlers(t *testing.T, upstreamStatus int, upstreamBody string) *Handlers {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(upstreamStatus)
		w.Write([]byte(upstreamBody))
	}))
	t.Cleanup(upstream.Close)

	client := gemini.NewClient(upstream.URL, "test-key", 5*time.Second)
	svc := proxysvc.NewService(client, nil, testLogger(), "gemini-2.0-flash")
	return New(svc, client, nil, testLogger())
}

func TestGenerate(t *testing.T) {
	h := newHandlers(t, http.StatusOK, `{"candidates": [{"content": [{"text": "{\"a\":1}"}]}]}`)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt": "hi"}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Status != http.StatusOK {
		t.Errorf("envelope status = %d, want 200", env.Status)
	}
	if env.Extracted.Text == nil || *env.Extracted.Text != `{"a":1}` {
		t.Errorf("extracted text = %v", env.Extracted.Text)
	}
	parsed, ok := env.Extracted.Parsed.(map[string]any)
	if !ok || parsed["a"] != float64(1) {
		t.Errorf("extracted parsed = %#v", env.Extracted.Parsed)
	}
	if !strings.Contains(string(env.Raw), "candidates") {
		t.Errorf("raw = %s, want upstream body", env.Raw)
	}
}

func TestGenerateMissingPrompt(t *testing.T) {
	h := newHandlers(t, http.StatusOK, `{}`)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body apiError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if !strings.Contains(body.Error.Message, "prompt") {
		t.Errorf("message = %q, must name the missing field", body.Error.Message)
	}
	if body.Error.Param == nil || *body.Error.Param != "prompt" {
		t.Errorf("param = %v, want prompt", body.Error.Param)
	}
	if body.Error.Type != "invalid_request_error" {
		t.Errorf("type = %q", body.Error.Type)
	}
}

func TestGenerateMalformedBody(t *testing.T) {
	h := newHandlers(t, http.StatusOK, `{}`)

	for _, body := range []string{`{`, ``, `{"prompt": 42}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Generate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
		var e apiError
		if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
			t.Errorf("body %q: response is not an error envelope: %v", body, err)
		}
	}
}

func TestGenerateMirrorsUpstreamStatus(t *testing.T) {
	const upstreamBody = `{"error": {"code": 503, "message": "overloaded"}}`
	h := newHandlers(t, http.StatusServiceUnavailable, upstreamBody)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt": "hi"}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want mirrored 503", rec.Code)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Status != http.StatusServiceUnavailable {
		t.Errorf("envelope status = %d, want 503", env.Status)
	}
	if string(env.Raw) != upstreamBody {
		t.Errorf("raw = %s, want verbatim upstream body", env.Raw)
	}
}

func TestGenerateUpstreamUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()
	client := gemini.NewClient(upstream.URL, "test-key", time.Second)
	svc := proxysvc.NewService(client, nil, testLogger(), "gemini-2.0-flash")
	h := New(svc, client, nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt": "hi"}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body apiError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Type != "server_error" {
		t.Errorf("type = %q, want server_error", body.Error.Type)
	}
	if body.Error.Message == "" {
		t.Error("message empty, want the stringified failure")
	}
}

func TestAnalyzeDocument(t *testing.T) {
	h := newHandlers(t, http.StatusOK, `{"candidates": [{"content": [{"text": "{\"poNumber\":\"PO-7\"}"}]}]}`)

	body := `{"fileBase64": "QkFTRTY0", "mimeType": "application/pdf", "textParts": ["ctx"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/analyzeDocument", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.AnalyzeDocument(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	parsed, ok := env.Extracted.Parsed.(map[string]any)
	if !ok || parsed["poNumber"] != "PO-7" {
		t.Errorf("parsed = %#v, want the extracted fields", env.Extracted.Parsed)
	}
}

func TestAnalyzeDocumentMissingFields(t *testing.T) {
	h := newHandlers(t, http.StatusOK, `{}`)

	tests := []struct {
		name      string
		body      string
		wantParam string
	}{
		{"no file", `{"mimeType": "application/pdf"}`, "fileBase64"},
		{"no mime type", `{"fileBase64": "QQ=="}`, "mimeType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/analyzeDocument", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.AnalyzeDocument(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var e apiError
			if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
				t.Fatal(err)
			}
			if e.Error.Param == nil || *e.Error.Param != tt.wantParam {
				t.Errorf("param = %v, want %q", e.Error.Param, tt.wantParam)
			}
		})
	}
}

// fakeLister counts catalog fetches.
type fakeLister struct {
	calls int
	res   *gemini.Result
	err   error
}

func (f *fakeLister) ListModels(ctx context.Context) (*gemini.Result, error) {
	f.calls++
	return f.res, f.err
}

func newTestCache(t *testing.T) *ristretto.Cache[string, any] {
	t.Helper()
	cache, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(cache.Close)
	return cache
}

func TestListModelsCaches(t *testing.T) {
	lister := &fakeLister{res: &gemini.Result{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"models": [{"name": "models/gemini-2.0-flash"}]}`),
	}}
	cache := newTestCache(t)
	h := New(nil, lister, cache, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/models", nil)
	rec := httptest.NewRecorder()
	h.ListModels(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", got)
	}
	cache.Wait()

	rec = httptest.NewRecorder()
	h.ListModels(rec, httptest.NewRequest(http.MethodGet, "/api/models", nil))

	if got := rec.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("X-Cache = %q, want HIT", got)
	}
	if lister.calls != 1 {
		t.Errorf("upstream fetches = %d, want 1", lister.calls)
	}
	if !strings.Contains(rec.Body.String(), "gemini-2.0-flash") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestListModelsErrorNotCached(t *testing.T) {
	lister := &fakeLister{res: &gemini.Result{
		StatusCode: http.StatusForbidden,
		Body:       []byte(`{"error": {"message": "key invalid"}}`),
	}}
	cache := newTestCache(t)
	h := New(nil, lister, cache, testLogger())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ListModels(rec, httptest.NewRequest(http.MethodGet, "/api/models", nil))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want mirrored 403", rec.Code)
		}
		cache.Wait()
	}
	if lister.calls != 2 {
		t.Errorf("upstream fetches = %d, want 2 (errors are not cached)", lister.calls)
	}
}
