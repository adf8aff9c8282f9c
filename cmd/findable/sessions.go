package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/findable"
)

// Run executes the sessions command.
func (c *SessionsCmd) Run(deps *Dependencies) error {
	filter := findable.SessionFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.WebsiteURL = &c.URL
	}

	sessions, err := deps.Sessions.FindSessions(deps.Ctx, filter)
	if err != nil {
		return deps.fail(err)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(deps.Stdout, "No sessions found. Use 'findable analyze <url>' to start one.")
		return nil
	}

	for _, s := range sessions {
		website := s.WebsiteURL
		if website == "" {
			website = "(not analyzed)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  features=%d pages=%d\n",
			s.Token, s.CreatedAt.Format(time.DateOnly), website, s.FeatureCount(), s.PageCount())
	}
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		return deps.fail(findable.Errorf(findable.EINVALID, "use --force to confirm deletion"))
	}

	sess, err := deps.session()
	if err != nil {
		return deps.fail(err)
	}

	if err := deps.Sessions.DeleteSession(deps.Ctx, sess.Token); err != nil {
		return deps.fail(err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted session %s\n", sess.Token)
	return nil
}
