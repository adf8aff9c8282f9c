package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/findable"
)

const featureSystemPrompt = "You are a helpful assistant that extracts features from website content. Always return valid JSON arrays."

// FeatureExtractor asks the model for a site's features.
type FeatureExtractor struct {
	Generator findable.Generator
	Logger    *slog.Logger
}

// Extract returns the cleaned feature list for site.
func (e *FeatureExtractor) Extract(ctx context.Context, site *Site) ([]string, error) {
	raw, err := findable.GenerateJSON(ctx, e.Generator, findable.GenerateRequest{
		System:      featureSystemPrompt,
		Prompt:      BuildFeaturePrompt(site),
		Temperature: 0.3,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, err
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, findable.Errorf(findable.EFORMAT, "Model returned invalid format (expected a list)")
	}
	if len(items) == 0 {
		return nil, findable.Errorf(findable.EFORMAT, "No features were extracted")
	}

	features := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			features = append(features, s)
		}
	}
	if len(features) == 0 {
		return nil, findable.Errorf(findable.EFORMAT, "No valid features were extracted")
	}

	loggerOrDiscard(e.Logger).Info("extracted features", "url", shorten(site.URL), "count", len(features))
	return features, nil
}

// BuildFeaturePrompt builds the feature extraction prompt for site.
func BuildFeaturePrompt(site *Site) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following website content and extract a concise list of features, capabilities, or key selling points.\n\n")
	fmt.Fprintf(&sb, "Website URL: %s\n", site.URL)

	name := site.Meta.SiteName
	if name == "" {
		name = site.Meta.Title
	}
	if name != "" {
		fmt.Fprintf(&sb, "Website Name: %s\n", name)
	}
	if site.Meta.Description != "" {
		fmt.Fprintf(&sb, "Website Description: %s\n", site.Meta.Description)
	}

	fmt.Fprintf(&sb, "\nWebsite Content:\n%s\n\n", site.Text)
	sb.WriteString(`Return a JSON array of feature strings (5-30 items). Each feature should be a concise, clear description (1-10 words).
Focus on:
- Product/service features
- Key capabilities
- Unique selling points
- Important functionality

Return ONLY a valid JSON array, no other text. Example format:
["Feature 1", "Feature 2", "Feature 3"]`)
	return sb.String()
}
