package analyze

import (
	"context"
	"log/slog"

	"github.com/fwojciec/findable"
)

// Service runs the pipeline stages against a caller-supplied session and
// persists each result.
type Service struct {
	Sessions findable.SessionService
	Site     *SiteReader
	Features *FeatureExtractor
	Pages    *PageGenerator
	Reports  *ReportBuilder
	Logger   *slog.Logger
}

// GetOrCreate returns the session for token. An empty or unknown token
// yields a newly created session.
func (s *Service) GetOrCreate(ctx context.Context, token string) (*findable.Session, error) {
	if token != "" {
		sess, err := s.Sessions.FindSessionByToken(ctx, token)
		if err == nil {
			return sess, nil
		}
		if findable.ErrorCode(err) != findable.ENOTFOUND {
			return nil, err
		}
	}

	sess := &findable.Session{}
	if err := s.Sessions.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	loggerOrDiscard(s.Logger).Info("session created", "id", sess.ID)
	return sess, nil
}

// Analyze reads rawURL, extracts its features and stores both on sess.
// Existing pages and report are left untouched.
func (s *Service) Analyze(ctx context.Context, sess *findable.Session, rawURL string) error {
	site, err := s.Site.Read(ctx, rawURL)
	if err != nil {
		return err
	}

	features, err := s.Features.Extract(ctx, site)
	if err != nil {
		return err
	}

	next := *sess
	next.WebsiteURL = site.URL
	next.Features = features
	return s.save(ctx, sess, &next)
}

// EditFeatures replaces the feature list with a cleaned copy of raw and
// returns how many items were truncated.
func (s *Service) EditFeatures(ctx context.Context, sess *findable.Session, raw []string) (int, error) {
	features, truncated, err := findable.CleanFeatures(raw)
	if err != nil {
		return 0, err
	}
	if truncated > 0 {
		loggerOrDiscard(s.Logger).Warn("features truncated", "count", truncated, "max_length", findable.MaxFeatureLength)
	}

	next := *sess
	next.Features = features
	if err := s.save(ctx, sess, &next); err != nil {
		return 0, err
	}
	return truncated, nil
}

// GeneratePages replaces the session's pages with a fresh run of count
// pages and returns the clamped count that was requested.
func (s *Service) GeneratePages(ctx context.Context, sess *findable.Session, count int) (int, error) {
	if err := requireAnalysis(sess, "generating AI pages"); err != nil {
		return 0, err
	}

	requested := findable.ClampPageCount(count)
	pages, err := s.Pages.Generate(ctx, sess.WebsiteURL, sess.Features, requested)
	if err != nil {
		return requested, err
	}

	next := *sess
	next.Pages = pages
	if err := s.save(ctx, sess, &next); err != nil {
		return requested, err
	}
	return requested, nil
}

// DeletePages removes every generated page and reports whether there was
// anything to delete.
func (s *Service) DeletePages(ctx context.Context, sess *findable.Session) (bool, error) {
	if len(sess.Pages) == 0 {
		return false, nil
	}
	next := *sess
	next.Pages = nil
	if err := s.save(ctx, sess, &next); err != nil {
		return false, err
	}
	loggerOrDiscard(s.Logger).Info("pages deleted", "session", sess.ID)
	return true, nil
}

// RunReport builds and stores a findability report for sess.
func (s *Service) RunReport(ctx context.Context, sess *findable.Session) error {
	if err := requireAnalysis(sess, "running findability analysis"); err != nil {
		return err
	}

	report, err := s.Reports.Build(ctx, sess.WebsiteURL, sess.Features, sess.Pages)
	if err != nil {
		return err
	}

	next := *sess
	next.Report = report
	return s.save(ctx, sess, &next)
}

// save stores next and copies it into sess only once the store accepted it,
// so a failed save leaves the caller's session as it was.
func (s *Service) save(ctx context.Context, sess, next *findable.Session) error {
	if err := s.Sessions.UpdateSession(ctx, next); err != nil {
		return err
	}
	*sess = *next
	return nil
}

func requireAnalysis(sess *findable.Session, action string) error {
	if sess.WebsiteURL == "" {
		return findable.Errorf(findable.EINVALID, "Please analyze a website first before %s.", action)
	}
	if len(sess.Features) == 0 {
		return findable.Errorf(findable.EINVALID, "Please add features first before %s.", action)
	}
	return nil
}
