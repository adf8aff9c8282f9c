package main

import (
	"fmt"

	"github.com/fwojciec/findable"
)

// Run executes the pages generate command.
func (c *PagesGenerateCmd) Run(deps *Dependencies) error {
	sess, err := deps.session()
	if err != nil {
		return deps.fail(err)
	}

	count := findable.ClampPageCount(findable.ParsePageCount(c.Count))
	fmt.Fprintf(deps.Stdout, "Generating %d pages for %s...\n", count, sess.WebsiteURL)

	requested, err := deps.Analyzer.GeneratePages(deps.Ctx, sess, count)
	if err != nil {
		return deps.fail(err)
	}

	fmt.Fprintf(deps.Stdout, "Generated %d of %d requested pages\n", len(sess.Pages), requested)
	return nil
}

// Run executes the pages list command.
func (c *PagesListCmd) Run(deps *Dependencies) error {
	sess, err := deps.session()
	if err != nil {
		return deps.fail(err)
	}

	if len(sess.Pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages yet. Use 'findable pages generate' to create some.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Pages for %s (%d total):\n\n", sess.WebsiteURL, len(sess.Pages))
	for i, p := range sess.Pages {
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     /ai/%s\n", i+1, p.Title, p.Slug)
	}
	return nil
}

// Run executes the pages show command.
func (c *PagesShowCmd) Run(deps *Dependencies) error {
	sess, err := deps.session()
	if err != nil {
		return deps.fail(err)
	}

	page := findable.FindPage(sess.Pages, c.Slug)
	if page == nil {
		return deps.fail(findable.Errorf(findable.ENOTFOUND, "page %q not found. Use 'findable pages list' to see generated pages.", c.Slug))
	}

	fmt.Fprintln(deps.Stdout, page.Content)
	return nil
}

// Run executes the pages delete command.
func (c *PagesDeleteCmd) Run(deps *Dependencies) error {
	sess, err := deps.session()
	if err != nil {
		return deps.fail(err)
	}

	deleted, err := deps.Analyzer.DeletePages(deps.Ctx, sess)
	if err != nil {
		return deps.fail(err)
	}

	if !deleted {
		fmt.Fprintln(deps.Stdout, "No pages to delete")
		return nil
	}
	fmt.Fprintln(deps.Stdout, "Deleted all pages")
	return nil
}
