package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/findable"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	sess, err := deps.session()
	if err != nil {
		return deps.fail(err)
	}

	if len(sess.Pages) == 0 {
		return deps.fail(findable.Errorf(findable.EINVALID, "No pages to export. Use 'findable pages generate' first."))
	}

	store := deps.NewStore(sess.WebsiteURL)
	for _, page := range sess.Pages {
		if err := store.Save(deps.Ctx, page); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error saving %s: %s\n", page.Slug, findable.ErrorMessage(err))
			return err
		}
	}

	if err := store.Commit(); err != nil {
		_ = store.Abort()
		return deps.fail(err)
	}

	fmt.Fprintf(deps.Stdout, "Exported %d pages to %s\n", len(sess.Pages), filepath.Join(c.Dir, c.Name))
	return nil
}
