package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/findable"
)

// Run executes the report command.
func (c *ReportCmd) Run(deps *Dependencies) error {
	sess, err := deps.session()
	if err != nil {
		return deps.fail(err)
	}

	if err := deps.Analyzer.RunReport(deps.Ctx, sess); err != nil {
		return deps.fail(err)
	}

	if c.JSON {
		return writeJSON(deps, sess.Report)
	}
	printReport(deps.Stdout, sess.Report)
	return nil
}

func printReport(w io.Writer, r *findable.Report) {
	fmt.Fprintf(w, "Findability score: %d/100\n", r.OverallScore)

	printSection(w, "Simulated queries", r.SimulatedQueries)
	if len(r.PerFeatureNotes) > 0 {
		fmt.Fprintln(w, "\nPer-feature notes:")
		for _, n := range r.PerFeatureNotes {
			fmt.Fprintf(w, "  - %s: %s\n", n.Feature, n.Note)
		}
	}
	printSection(w, "Content gaps", r.ContentGaps)
	printSection(w, "Pages to add", r.Recommendations.PagesToAdd)
	printSection(w, "FAQ suggestions", r.Recommendations.FAQSuggestions)
	printSection(w, "Wording improvements", r.WordingImprovements)
}

func printSection(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func writeJSON(deps *Dependencies, v any) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return deps.fail(err)
	}
	return nil
}
