package types

import "encoding/json"

// GenerateRequest is the body of a text generation call.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// Validate reports the first missing required field.
func (r *GenerateRequest) Validate() error {
	if r.Prompt == "" {
		return &ValidationError{Field: "prompt", Reason: "missing prompt"}
	}
	return nil
}

// AnalyzeRequest is the body of a document analysis call. ResponseSchema is
// kept raw so it reaches the upstream byte for byte.
type AnalyzeRequest struct {
	FileBase64     string          `json:"fileBase64"`
	MimeType       string          `json:"mimeType"`
	TextParts      []TextPart      `json:"textParts,omitempty"`
	Model          string          `json:"model,omitempty"`
	ResponseSchema json.RawMessage `json:"responseSchema,omitempty"`
}

// Validate reports the first missing required field.
func (r *AnalyzeRequest) Validate() error {
	if r.FileBase64 == "" {
		return &ValidationError{Field: "fileBase64", Reason: "missing fileBase64"}
	}
	if r.MimeType == "" {
		return &ValidationError{Field: "mimeType", Reason: "missing mimeType"}
	}
	return nil
}

// HasResponseSchema reports whether the caller actually supplied a schema.
// An explicit JSON null does not count.
func (r *AnalyzeRequest) HasResponseSchema() bool {
	return len(r.ResponseSchema) > 0 && string(r.ResponseSchema) != "null"
}

// TextPart is caller-supplied context text with polymorphic JSON support.
// A bare string and an object {"text": "..."} decode to the same value.
type TextPart struct {
	Text string
}

// UnmarshalJSON accepts both string and object formats.
func (p *TextPart) UnmarshalJSON(data []byte) error {
	// Try string first
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.Text = s
		return nil
	}

	// Try object form
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		p.Text = obj.Text
		return nil
	}

	return nil // Tolerate null and unrecognized shapes
}

// MarshalJSON always emits the object form.
func (p TextPart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Text string `json:"text"`
	}{p.Text})
}
