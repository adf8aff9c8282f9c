package analyze

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fwojciec/findable"
)

// Batching parameters for page generation.
const (
	// SingleBatchLimit is the largest run generated in one call.
	SingleBatchLimit = 30

	// BatchSize is the page count requested per call for larger runs.
	BatchSize = 25

	// MaxPromptFeatures bounds the features embedded in a page prompt.
	MaxPromptFeatures = 20
)

const pageSystemPrompt = "You are a helpful assistant that generates AI-oriented web pages. Always return valid JSON arrays with the exact number of pages requested."

// PageGenerator produces AI-discoverability pages in sequential batches.
type PageGenerator struct {
	Generator findable.Generator
	Logger    *slog.Logger
}

// Generate returns up to count pages (clamped to the page count bounds)
// describing websiteURL and features.
//
// Slugs are normalized and unique across the whole run. A batch that fails
// or returns something other than a list is skipped; missing credentials
// and context cancellation abort the run.
func (g *PageGenerator) Generate(ctx context.Context, websiteURL string, features []string, count int) ([]*findable.Page, error) {
	logger := loggerOrDiscard(g.Logger)
	target := findable.ClampPageCount(count)
	size, batches := planBatches(target)

	pages := make([]*findable.Page, 0, target)
	slugs := findable.NewSlugSet()
	var lastErr error

	for batch := 1; batch <= batches; batch++ {
		k := min(size, target-len(pages))
		if k <= 0 {
			break
		}
		maxTokens := min(16000, max(4000, k*1000))
		logger.Info("generating batch", "batch", batch, "of", batches, "pages", k, "max_tokens", maxTokens)

		raw, err := findable.GenerateJSON(ctx, g.Generator, findable.GenerateRequest{
			System:      pageSystemPrompt,
			Prompt:      BuildPagePrompt(websiteURL, features, k, batch, batches),
			Temperature: 0.7,
			MaxTokens:   maxTokens,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, context.Canceled) || findable.ErrorCode(err) == findable.ECREDENTIALS {
				return nil, err
			}
			logger.Warn("batch failed, skipping", "batch", batch, "err", err)
			lastErr = err
			continue
		}

		items, ok := raw.([]any)
		if !ok {
			logger.Warn("batch returned invalid format, skipping", "batch", batch)
			lastErr = findable.Errorf(findable.EFORMAT, "Model returned invalid format (expected a list)")
			continue
		}

		for _, item := range items {
			page, ok := parsePage(item)
			if !ok {
				continue
			}
			page.Slug = slugs.Claim(page.Slug)
			pages = append(pages, page)
		}
		logger.Info("batch completed", "batch", batch, "returned", len(items), "total", len(pages))

		if len(pages) >= target {
			break
		}
	}

	if len(pages) > target {
		pages = pages[:target]
	}
	if len(pages) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, findable.Errorf(findable.EFORMAT, "No valid pages were generated")
	}

	logger.Info("pages generated", "total", len(pages), "requested", target)
	return pages, nil
}

// planBatches returns the per-call page count and the number of calls.
func planBatches(n int) (size, batches int) {
	if n <= SingleBatchLimit {
		return n, 1
	}
	return BatchSize, (n + BatchSize - 1) / BatchSize
}

// parsePage converts one decoded array entry into a Page. Entries without
// slug, title and content, or whose slug normalizes to nothing, are rejected.
func parsePage(item any) (*findable.Page, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return nil, false
	}
	rawSlug, hasSlug := obj["slug"]
	title, hasTitle := obj["title"]
	content, hasContent := obj["content"]
	if !hasSlug || !hasTitle || !hasContent {
		return nil, false
	}
	s, ok := rawSlug.(string)
	if !ok {
		return nil, false
	}
	slug := findable.NormalizeSlug(s)
	if slug == "" {
		return nil, false
	}
	return &findable.Page{
		Slug:    slug,
		Title:   strings.TrimSpace(stringify(title)),
		Content: strings.TrimSpace(stringify(content)),
	}, true
}

// stringify renders a decoded JSON scalar as text.
func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// BuildPagePrompt builds the prompt for one batch of k pages.
func BuildPagePrompt(websiteURL string, features []string, k, batch, batches int) string {
	if len(features) > MaxPromptFeatures {
		features = features[:MaxPromptFeatures]
	}

	var batchContext string
	if batches > 1 {
		batchContext = fmt.Sprintf("\n\nThis is batch %d of %d. Generate exactly %d unique pages. Ensure all pages are different from previous batches.", batch, batches, k)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d AI-oriented web pages for a website. These pages are specifically designed for AI scrapers and LLM consumption to improve AI rankings. They should be:\n\n", k)
	sb.WriteString(`1. Highly structured and machine-readable
2. Rich in semantic information and context
3. Optimized for AI understanding (not human SEO)
4. Include clear feature descriptions, use cases, and capabilities
5. Use structured data patterns that AI systems can easily parse
6. Focus on factual, comprehensive information about the website's offerings

`)
	fmt.Fprintf(&sb, "Website URL: %s\n\nKey Features:\n%s\n%s\n\n", websiteURL, bulletList(features), batchContext)
	sb.WriteString(`Generate pages that would be useful for:
- AI assistants understanding what the website offers
- AI crawlers and LLM training data
- Improving AI rankings and discoverability
- Providing detailed, structured information about features

For each page, return a JSON object with:
- slug: URL-friendly identifier (lowercase, hyphens, no spaces) - MUST be unique
- title: Clear, descriptive title optimized for AI understanding
- content: Full HTML content with:
  * Clear semantic structure (use proper HTML tags: <h1>, <h2>, <p>, <ul>, <li>)
  * Rich context about features, benefits, and use cases
  * Structured information that AI systems can parse
  * Comprehensive descriptions (not marketing fluff)
  * Technical details and capabilities
  * Use cases and examples

The content should be written for AI consumption - focus on clarity, completeness, and machine-readability over human marketing appeal.

`)
	fmt.Fprintf(&sb, "Return a JSON array of exactly %d page objects. Example format:\n", k)
	sb.WriteString(`[
  {"slug": "features-overview", "title": "Features Overview", "content": "<h1>Features Overview</h1><p>...</p>"},
  {"slug": "capabilities", "title": "Capabilities", "content": "<h1>Capabilities</h1><p>...</p>"}
]

Return ONLY valid JSON, no markdown code blocks or other text.`)
	return sb.String()
}
