package findable

import (
	"fmt"
	"math"
)

// Report estimates how discoverable a site's features are to AI search
// agents and assistants.
type Report struct {
	OverallScore        int             `json:"overall_score"`
	SimulatedQueries    []string        `json:"simulated_queries"`
	PerFeatureNotes     []FeatureNote   `json:"per_feature_notes"`
	ContentGaps         []string        `json:"content_gaps"`
	Recommendations     Recommendations `json:"recommendations"`
	WordingImprovements []string        `json:"wording_improvements"`
}

// FeatureNote is a findability assessment for a single feature.
type FeatureNote struct {
	Feature string `json:"feature"`
	Note    string `json:"note"`
}

// Recommendations lists content to add to improve findability.
type Recommendations struct {
	PagesToAdd     []string `json:"pages_to_add"`
	FAQSuggestions []string `json:"faq_suggestions"`
}

// RepairReport converts a decoded model reply into a complete Report.
//
// The reply must be an object carrying overall_score. A numeric score is
// truncated to an integer and clamped to [0,100]; any other score becomes 0.
// Every other missing or mistyped field is replaced by its empty value, so
// the returned report never has nil slices.
func RepairReport(raw any) (*Report, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, Errorf(EFORMAT, "Model returned invalid format (expected an object)")
	}

	score, ok := obj["overall_score"]
	if !ok {
		return nil, Errorf(EFORMAT, "Report missing overall_score")
	}

	report := &Report{
		OverallScore:        repairScore(score),
		SimulatedQueries:    stringList(obj["simulated_queries"]),
		PerFeatureNotes:     featureNotes(obj["per_feature_notes"]),
		ContentGaps:         stringList(obj["content_gaps"]),
		WordingImprovements: stringList(obj["wording_improvements"]),
		Recommendations: Recommendations{
			PagesToAdd:     []string{},
			FAQSuggestions: []string{},
		},
	}
	if rec, ok := obj["recommendations"].(map[string]any); ok {
		report.Recommendations.PagesToAdd = stringList(rec["pages_to_add"])
		report.Recommendations.FAQSuggestions = stringList(rec["faq_suggestions"])
	}

	return report, nil
}

func repairScore(v any) int {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) {
		return 0
	}
	// Clamp before converting; int() of an out-of-range float is undefined.
	return int(max(0, min(100, f)))
}

// stringList keeps the scalar items of a JSON array as strings.
func stringList(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch item := item.(type) {
		case string:
			out = append(out, item)
		case float64, bool:
			out = append(out, fmt.Sprint(item))
		}
	}
	return out
}

func featureNotes(v any) []FeatureNote {
	items, _ := v.([]any)
	out := make([]FeatureNote, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		feature, _ := obj["feature"].(string)
		note, _ := obj["note"].(string)
		out = append(out, FeatureNote{Feature: feature, Note: note})
	}
	return out
}
