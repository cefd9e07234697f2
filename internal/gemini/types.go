// Package gemini is a minimal client for the Gemini REST API.
package gemini

import "encoding/json"

// GenerateContentRequest is the generateContent request body.
type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// Content groups an ordered sequence of parts.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is one fragment of a content entry: flat text or inline base64 data,
// never both.
type Part struct {
	Text       *string     `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData carries a base64-encoded payload and its media type.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// GenerationConfig tunes a model call. ResponseSchema is kept as raw JSON so
// caller-supplied schemas pass through byte for byte.
type GenerationConfig struct {
	Temperature      float64         `json:"temperature"`
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

// TextPart builds a text-only part.
func TextPart(s string) Part {
	return Part{Text: &s}
}
