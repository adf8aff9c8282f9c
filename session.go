package findable

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// Limits on user-edited feature lists.
const (
	MaxFeatureLength = 500
	MaxFeatures      = 100
)

// Session holds one user's analysis: the site, its features, the generated
// pages and the findability report.
type Session struct {
	ID         string    `json:"id"`
	Token      string    `json:"token"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	WebsiteURL string    `json:"websiteUrl"`
	Features   []string  `json:"features"`
	Pages      []*Page   `json:"pages"`
	Report     *Report   `json:"report,omitempty"`
}

// FeatureCount returns the number of features.
func (s *Session) FeatureCount() int { return len(s.Features) }

// PageCount returns the number of generated pages.
func (s *Session) PageCount() int { return len(s.Pages) }

// HasReport reports whether a findability report is stored.
func (s *Session) HasReport() bool { return s.Report != nil }

// Validate returns an error if the session contains invalid fields.
//
// The MaxFeatures and MaxFeatureLength limits apply to user edits through
// CleanFeatures only; extracted feature lists are stored as returned.
func (s *Session) Validate() error {
	for _, f := range s.Features {
		if strings.TrimSpace(f) == "" {
			return Errorf(EINVALID, "features must not be empty")
		}
	}
	seen := make(map[string]bool, len(s.Pages))
	for _, p := range s.Pages {
		if p.Slug == "" || NormalizeSlug(p.Slug) != p.Slug {
			return Errorf(EINVALID, "invalid page slug %q", p.Slug)
		}
		if seen[p.Slug] {
			return Errorf(EINVALID, "duplicate page slug %q", p.Slug)
		}
		seen[p.Slug] = true
	}
	return nil
}

// CleanFeatures prepares a user-edited feature list for storage. Items are
// trimmed, empty items dropped and items longer than MaxFeatureLength
// truncated. The second return value counts truncated items.
func CleanFeatures(raw []string) ([]string, int, error) {
	if len(raw) == 0 {
		return nil, 0, Errorf(EINVALID, "No features provided")
	}

	var truncated int
	cleaned := make([]string, 0, len(raw))
	for _, f := range raw {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if utf8.RuneCountInString(f) > MaxFeatureLength {
			f = string([]rune(f)[:MaxFeatureLength])
			truncated++
		}
		cleaned = append(cleaned, f)
	}

	if len(cleaned) == 0 {
		return nil, 0, Errorf(EINVALID, "At least one non-empty feature is required")
	}
	if len(cleaned) > MaxFeatures {
		return nil, 0, Errorf(EINVALID, "Too many features (maximum %d allowed)", MaxFeatures)
	}
	return cleaned, truncated, nil
}

// SessionService represents a service for managing analysis sessions.
type SessionService interface {
	// CreateSession stores a new session, assigning its ID, token and
	// timestamps.
	CreateSession(ctx context.Context, session *Session) error

	// FindSessionByToken retrieves a session by its token.
	// Returns ENOTFOUND if the session does not exist.
	FindSessionByToken(ctx context.Context, token string) (*Session, error)

	// FindSessions retrieves sessions matching the filter, newest first.
	FindSessions(ctx context.Context, filter SessionFilter) ([]*Session, error)

	// UpdateSession saves the website URL, features, pages and report.
	// Returns ENOTFOUND if the session does not exist.
	UpdateSession(ctx context.Context, session *Session) error

	// DeleteSession permanently removes a session.
	// Returns ENOTFOUND if the session does not exist.
	DeleteSession(ctx context.Context, token string) error
}

// SessionFilter represents a filter for FindSessions.
type SessionFilter struct {
	// WebsiteURL matches sessions whose URL contains this substring.
	WebsiteURL *string `json:"websiteUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
