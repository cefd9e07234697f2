// Package extract derives flat text, and parsed JSON when the text itself
// looks like JSON, from upstream generateContent response bodies.
package extract

import (
	"encoding/json"
	"strings"
)

// Extraction is the best-effort view of one upstream response body. Text is
// nil when no recognized location held a string; Parsed is nil unless Text
// contained a decodable JSON object or array.
type Extraction struct {
	Raw    any     `json:"raw"`
	Text   *string `json:"text"`
	Parsed any     `json:"parsed"`
}

// Unwrap inspects an already-decoded upstream body and extracts a flat text
// payload. Locations are checked in priority order: a top-level "text" field,
// then output[0].content[0].text, then candidates[0].content[0].text. The
// first present value wins. Response shapes vary across models and
// configurations, so Unwrap never fails: anything unrecognized degrades to
// nil fields instead of an error.
func Unwrap(raw any) Extraction {
	ext := Extraction{Raw: raw}

	candidate, ok := field(raw, "text")
	if !ok {
		candidate, ok = firstText(raw, "output")
	}
	if !ok {
		candidate, ok = firstText(raw, "candidates")
	}
	if !ok {
		return ext
	}

	text, isString := candidate.(string)
	if !isString {
		return ext
	}
	ext.Text = &text

	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return ext
	}
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		ext.Parsed = parsed
	}
	return ext
}

// firstText looks up key[0].content[0].text beneath raw.
func firstText(raw any, key string) (any, bool) {
	v, ok := field(raw, key)
	if !ok {
		return nil, false
	}
	if v, ok = index(v, 0); !ok {
		return nil, false
	}
	if v, ok = field(v, "content"); !ok {
		return nil, false
	}
	if v, ok = index(v, 0); !ok {
		return nil, false
	}
	return field(v, "text")
}

// field returns m[key] when raw is a JSON object holding a non-null value.
func field(raw any, key string) (any, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// index returns s[i] when raw is a JSON array long enough to hold a non-null
// element there.
func index(raw any, i int) (any, bool) {
	s, ok := raw.([]any)
	if !ok || i >= len(s) {
		return nil, false
	}
	if s[i] == nil {
		return nil, false
	}
	return s[i], true
}
