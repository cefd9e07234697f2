// Package proxy implements the two proxied operations, text generation and
// document analysis, independent of how they are deployed. The long-running
// server and the on-demand functions are both thin adapters over this
// package.
package proxy

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/saketg0210/autopo-server/internal/extract"
	"github.com/saketg0210/autopo-server/internal/gemini"
	"github.com/saketg0210/autopo-server/internal/tokenizer"
	"github.com/saketg0210/autopo-server/internal/types"
)

// tokenCountTimeout is the maximum time to wait for token counting before proceeding.
const tokenCountTimeout = 100 * time.Millisecond

// Temperatures are fixed per operation. Analysis runs close to zero so field
// extraction stays deterministic.
const (
	generateTemperature = 0.2
	analyzeTemperature  = 0.05
)

// extractionPrompt asks the model for the purchase-order fields the document
// pipeline consumes downstream.
const extractionPrompt = "Extract the following fields from the attached purchase order document: " +
	"customerInternalId, customerRequestDate, poNumber, shipToSelect, " +
	"and lineItems as an array of {item, quantity} objects. " +
	"Respond with a pure JSON object only, no markdown fences and no commentary."

// Generator is the upstream surface the service needs. *gemini.Client
// satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, req *gemini.GenerateContentRequest) (*gemini.Result, error)
}

// Service proxies requests upstream and wraps every response, error statuses
// included, in the same envelope.
type Service struct {
	client       Generator
	tok          tokenizer.Tokenizer
	logger       *slog.Logger
	defaultModel string
}

// NewService creates a Service. The tokenizer may be nil to skip prompt size
// estimates.
func NewService(client Generator, tok tokenizer.Tokenizer, logger *slog.Logger, defaultModel string) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:       client,
		tok:          tok,
		logger:       logger,
		defaultModel: defaultModel,
	}
}

// Generate proxies one text generation call: a single text part at a fixed
// temperature.
func (s *Service) Generate(ctx context.Context, req *types.GenerateRequest) (*types.ProxyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	model := s.model(req.Model)
	body := &gemini.GenerateContentRequest{
		Contents: []gemini.Content{{Parts: []gemini.Part{gemini.TextPart(req.Prompt)}}},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature: generateTemperature,
		},
	}

	return s.callUpstream(ctx, "generate", model, req.Prompt, body)
}

// AnalyzeDocument proxies one document analysis call. Parts order is fixed:
// caller-supplied context first, then the extraction instructions, then the
// document itself as inline data.
func (s *Service) AnalyzeDocument(ctx context.Context, req *types.AnalyzeRequest) (*types.ProxyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	model := s.model(req.Model)

	parts := lo.Map(req.TextParts, func(p types.TextPart, _ int) gemini.Part {
		return gemini.TextPart(p.Text)
	})
	parts = append(parts, gemini.TextPart(extractionPrompt))
	parts = append(parts, gemini.Part{InlineData: &gemini.InlineData{
		MimeType: req.MimeType,
		Data:     req.FileBase64,
	}})

	cfg := &gemini.GenerationConfig{
		Temperature:      analyzeTemperature,
		ResponseMimeType: "application/json",
	}
	if req.HasResponseSchema() {
		cfg.ResponseSchema = req.ResponseSchema
	}

	body := &gemini.GenerateContentRequest{
		Contents:         []gemini.Content{{Parts: parts}},
		GenerationConfig: cfg,
	}

	return s.callUpstream(ctx, "analyzeDocument", model, promptText(req), body)
}

// callUpstream issues the generateContent call and builds the envelope.
// Token counting runs in parallel with the upstream request to minimize latency.
func (s *Service) callUpstream(ctx context.Context, op, model, prompt string, body *gemini.GenerateContentRequest) (*types.ProxyResponse, error) {
	start := time.Now()

	// Start token counting in background goroutine (non-blocking)
	tokensChan := make(chan int, 1)
	go func() {
		defer close(tokensChan)
		if s.tok != nil {
			if tokens, err := s.tok.CountText(prompt, model); err == nil {
				tokensChan <- tokens
			}
		}
	}()

	res, err := s.client.GenerateContent(ctx, model, body)
	if err != nil {
		return nil, err
	}

	// Collect token count with timeout (100ms max wait)
	var promptTokens int
	select {
	case tokens, ok := <-tokensChan:
		if ok {
			promptTokens = tokens
		}
	case <-time.After(tokenCountTimeout):
		// Token counting took too long, proceed without an estimate
	}

	s.logger.Info("upstream call",
		"op", op,
		"model", model,
		"status", res.StatusCode,
		"prompt_tokens_est", promptTokens,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &types.ProxyResponse{
		Status:    res.StatusCode,
		Extracted: extract.Unwrap(res.JSON),
		Raw:       json.RawMessage(res.Body),
	}, nil
}

// model resolves the effective model name.
func (s *Service) model(requested string) string {
	if requested != "" {
		return requested
	}
	return s.defaultModel
}

// promptText flattens the text-bearing parts of an analysis request for
// token estimation.
func promptText(req *types.AnalyzeRequest) string {
	text := ""
	for _, p := range req.TextParts {
		text += p.Text + "\n"
	}
	return text + extractionPrompt
}
