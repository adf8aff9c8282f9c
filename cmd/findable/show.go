package main

import (
	"fmt"
	"time"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	sess, err := deps.session()
	if err != nil {
		return deps.fail(err)
	}

	if c.JSON {
		return writeJSON(deps, sess)
	}

	website := sess.WebsiteURL
	if website == "" {
		website = "(not analyzed)"
	}
	fmt.Fprintf(deps.Stdout, "Session:  %s\n", sess.Token)
	fmt.Fprintf(deps.Stdout, "Website:  %s\n", website)
	fmt.Fprintf(deps.Stdout, "Features: %d\n", sess.FeatureCount())
	fmt.Fprintf(deps.Stdout, "Pages:    %d\n", sess.PageCount())
	if sess.HasReport() {
		fmt.Fprintf(deps.Stdout, "Score:    %d/100\n", sess.Report.OverallScore)
	}
	fmt.Fprintf(deps.Stdout, "Updated:  %s\n", sess.UpdatedAt.Format(time.DateTime))

	if sess.HasReport() {
		fmt.Fprintln(deps.Stdout)
		printReport(deps.Stdout, sess.Report)
	}
	return nil
}
