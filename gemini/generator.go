// Package gemini implements findable.Generator on the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/findable"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultModel is used when no model id is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultCallTimeout bounds a single generation call.
const DefaultCallTimeout = 60 * time.Second

// placeholderKey is the value shipped in example environment files.
const placeholderKey = "your_key_here"

// Ensure Generator implements findable.Generator at compile time.
var _ findable.Generator = (*Generator)(nil)

// Generator implements findable.Generator using Google Gemini.
type Generator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	baseURL string
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel sets the model id. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithTimeout overrides DefaultCallTimeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		g.timeout = d
	}
}

// WithMinInterval spaces consecutive calls at least d apart. A
// non-positive d leaves calls unspaced.
func WithMinInterval(d time.Duration) Option {
	return func(g *Generator) {
		if d <= 0 {
			g.limiter = nil
			return
		}
		g.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(g *Generator) {
		g.baseURL = baseURL
	}
}

// NewGenerator creates a Generator for apiKey.
//
// A missing or placeholder key does not fail construction; every call on
// such a Generator returns ECREDENTIALS instead.
func NewGenerator(ctx context.Context, apiKey string, opts ...Option) (*Generator, error) {
	g := &Generator{
		model:   DefaultModel,
		timeout: DefaultCallTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}

	if !HasAPIKey(apiKey) {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  NewHTTPClient(),
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return nil, err
	}
	g.client = client
	return g, nil
}

// HasAPIKey reports whether key looks like a configured API key.
func HasAPIKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != placeholderKey
}

// NewHTTPClient returns the client used for API calls. It never consults
// proxy environment variables.
func NewHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	return &http.Client{Transport: transport}
}

// Generate sends req to the model and returns its text reply.
func (g *Generator) Generate(ctx context.Context, req findable.GenerateRequest) (string, error) {
	if g.client == nil {
		return "", findable.Errorf(findable.ECREDENTIALS, "API key is not configured. Set GEMINI_API_KEY to enable generation.")
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			// The next slot is later than the caller's deadline.
			return "", findable.Errorf(findable.EREMOTE, "The AI service timed out. Please try again.")
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.client.Models.GenerateContent(callCtx, g.model,
		[]*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)},
		BuildConfig(req),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", findable.Errorf(findable.EREMOTE, "The AI service timed out. Please try again.")
		}
		return "", findable.Errorf(findable.EREMOTE, "The AI service request failed. Please try again later.")
	}
	if result == nil {
		return "", findable.Errorf(findable.EREMOTE, "The AI service returned an empty response.")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for req.
func BuildConfig(req findable.GenerateRequest) *genai.GenerateContentConfig {
	temp := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:      &temp,
		MaxOutputTokens:  int32(req.MaxTokens),
		ResponseMIMEType: "application/json",
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	return config
}
