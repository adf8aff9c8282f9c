package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/findable"
)

// Report prompt input limits.
const (
	MaxReportFeatures    = 30
	MaxReportPages       = 5
	MaxReportPageExcerpt = 200
)

const reportSystemPrompt = "You are an expert in website findability and SEO analysis. Always return valid JSON."

// ReportBuilder asks the model for a findability report.
type ReportBuilder struct {
	Generator findable.Generator
	Logger    *slog.Logger
}

// Build returns a repaired findability report. pages may be empty.
func (b *ReportBuilder) Build(ctx context.Context, websiteURL string, features []string, pages []*findable.Page) (*findable.Report, error) {
	raw, err := findable.GenerateJSON(ctx, b.Generator, findable.GenerateRequest{
		System:      reportSystemPrompt,
		Prompt:      BuildReportPrompt(websiteURL, features, pages),
		Temperature: 0.7,
		MaxTokens:   4000,
	})
	if err != nil {
		return nil, err
	}

	report, err := findable.RepairReport(raw)
	if err != nil {
		return nil, err
	}
	loggerOrDiscard(b.Logger).Info("findability report built",
		"url", shorten(websiteURL),
		"score", report.OverallScore,
		"queries", len(report.SimulatedQueries),
	)
	return report, nil
}

// BuildReportPrompt builds the findability report prompt.
func BuildReportPrompt(websiteURL string, features []string, pages []*findable.Page) string {
	if len(features) > MaxReportFeatures {
		features = features[:MaxReportFeatures]
	}

	var summary string
	if len(pages) > 0 {
		var sb strings.Builder
		sb.WriteString("\n\nAI-Generated Pages Available:\n")
		for _, p := range pages[:min(len(pages), MaxReportPages)] {
			title := p.Title
			if title == "" {
				title = "Untitled"
			}
			fmt.Fprintf(&sb, "- %s: %s...\n", title, excerpt(p.Content, MaxReportPageExcerpt))
		}
		summary = sb.String()
	}

	var sb strings.Builder
	sb.WriteString(`You are analyzing the findability of a website. Your task is to:

1. Generate 15-25 realistic user search queries that people might use to find this website's features
2. Analyze how well the website content supports these queries
3. Create a comprehensive findability report

`)
	fmt.Fprintf(&sb, "Website URL: %s\n\nKey Features:\n%s\n%s\n\n", websiteURL, bulletList(features), summary)
	sb.WriteString(`Generate a JSON report with the following structure:
{
    "overall_score": <number 0-100>,
    "simulated_queries": [<list of 15-25 search query strings>],
    "per_feature_notes": [
        {"feature": "<feature name>", "note": "<findability assessment>"},
        ...
    ],
    "content_gaps": [
        "<gap description 1>",
        "<gap description 2>",
        ...
    ],
    "recommendations": {
        "pages_to_add": [
            "<recommended page/section 1>",
            "<recommended page/section 2>",
            ...
        ],
        "faq_suggestions": [
            "<FAQ question 1>",
            "<FAQ question 2>",
            ...
        ]
    },
    "wording_improvements": [
        "<suggestion 1>",
        "<suggestion 2>",
        ...
    ]
}

The overall_score should reflect how easily users can find information about the features (0 = very poor, 100 = excellent).
Return ONLY valid JSON, no markdown code blocks or other text.`)
	return sb.String()
}

// excerpt returns the first n runes of s.
func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
