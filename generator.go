package findable

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// GenerateRequest is a single chat-completion style call to a language model.
type GenerateRequest struct {
	// System is the system instruction.
	System string

	// Prompt is the fully rendered user prompt.
	Prompt string

	// Temperature is the sampling temperature.
	Temperature float32

	// MaxTokens caps the number of output tokens.
	MaxTokens int
}

// Generator sends prompts to a remote language model.
type Generator interface {
	// Generate returns the model's free-form text reply.
	// Returns ECREDENTIALS if the endpoint is not configured and EREMOTE
	// if the call itself fails.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// MalformedJSONError is returned when generated text cannot be decoded as JSON.
type MalformedJSONError struct {
	// Raw is the generated text after fence stripping.
	Raw string
	Err error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("Failed to parse model response as JSON: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Err
}

var (
	leadingJSONFence = regexp.MustCompile("^```json\\s*")
	leadingFence     = regexp.MustCompile("^```\\s*")
	trailingFence    = regexp.MustCompile("```\\s*$")
)

// StripCodeFence removes a leading ``` or ```json fence and a trailing ```
// fence from s. Text without fences is only trimmed.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = leadingJSONFence.ReplaceAllString(s, "")
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// DecodeJSON strips code fences from text and decodes the remaining JSON.
// Objects decode to map[string]any and arrays to []any.
func DecodeJSON(text string) (any, error) {
	raw := StripCodeFence(text)
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, &MalformedJSONError{Raw: raw, Err: err}
	}
	return v, nil
}

// GenerateJSON calls g and decodes its reply as JSON.
func GenerateJSON(ctx context.Context, g Generator, req GenerateRequest) (any, error) {
	text, err := g.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return DecodeJSON(text)
}
