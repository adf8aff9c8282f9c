package main

import (
	"fmt"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	sess, err := deps.Analyzer.GetOrCreate(deps.Ctx, deps.Token)
	if err != nil {
		return deps.fail(err)
	}

	fmt.Fprintf(deps.Stdout, "Analyzing %s...\n", c.URL)
	if err := deps.Analyzer.Analyze(deps.Ctx, sess, c.URL); err != nil {
		return deps.fail(err)
	}

	fmt.Fprintf(deps.Stdout, "Found %d features on %s:\n", len(sess.Features), sess.WebsiteURL)
	printFeatures(deps, sess.Features)

	if deps.Token != sess.Token {
		fmt.Fprintf(deps.Stdout, "\nSession: %s\n", sess.Token)
		fmt.Fprintf(deps.Stdout, "Set FINDABLE_SESSION=%s to keep working on this session.\n", sess.Token)
	}
	return nil
}

func printFeatures(deps *Dependencies, features []string) {
	for i, f := range features {
		fmt.Fprintf(deps.Stdout, "  %d. %s\n", i+1, f)
	}
}
