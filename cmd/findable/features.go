package main

import (
	"fmt"

	"github.com/fwojciec/findable"
)

// Run executes the features list command.
func (c *FeaturesListCmd) Run(deps *Dependencies) error {
	sess, err := deps.session()
	if err != nil {
		return deps.fail(err)
	}

	if len(sess.Features) == 0 {
		fmt.Fprintln(deps.Stdout, "No features yet. Use 'findable analyze <url>' or 'findable features set'.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Features for %s (%d total):\n", sess.WebsiteURL, len(sess.Features))
	printFeatures(deps, sess.Features)
	return nil
}

// Run executes the features set command.
func (c *FeaturesSetCmd) Run(deps *Dependencies) error {
	sess, err := deps.session()
	if err != nil {
		return deps.fail(err)
	}

	truncated, err := deps.Analyzer.EditFeatures(deps.Ctx, sess, c.Features)
	if err != nil {
		return deps.fail(err)
	}

	if truncated > 0 {
		fmt.Fprintf(deps.Stderr, "warning: %d feature(s) truncated to %d characters\n", truncated, findable.MaxFeatureLength)
	}
	fmt.Fprintf(deps.Stdout, "Saved %d features\n", len(sess.Features))
	return nil
}
