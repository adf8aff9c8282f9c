package analyze_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/findable"
	"github.com/fwojciec/findable/analyze"
	"github.com/fwojciec/findable/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newService wires a Service whose model replies come from generate.
func newService(sessions *mock.SessionService, generate func(req findable.GenerateRequest) (string, error)) *analyze.Service {
	gen := &mock.Generator{
		GenerateFn: func(_ context.Context, req findable.GenerateRequest) (string, error) {
			return generate(req)
		},
	}
	return &analyze.Service{
		Sessions: sessions,
		Site: &analyze.SiteReader{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "<html><body><p>Acme CRM keeps every customer conversation in one place.</p></body></html>", nil
				},
			},
			Extractor: &mock.TextExtractor{
				ExtractTextFn: func(string, int) string {
					return "Acme CRM keeps every customer conversation in one place."
				},
			},
		},
		Features: &analyze.FeatureExtractor{Generator: gen},
		Pages:    &analyze.PageGenerator{Generator: gen},
		Reports:  &analyze.ReportBuilder{Generator: gen},
	}
}

// recordingSessions is a SessionService that counts updates.
func recordingSessions(updates *int) *mock.SessionService {
	return &mock.SessionService{
		UpdateSessionFn: func(context.Context, *findable.Session) error {
			*updates++
			return nil
		},
	}
}

func unexpectedGenerate(t *testing.T) func(findable.GenerateRequest) (string, error) {
	return func(findable.GenerateRequest) (string, error) {
		t.Fatal("generator must not be called")
		return "", nil
	}
}

func TestService_GetOrCreate(t *testing.T) {
	t.Parallel()

	t.Run("returns existing session", func(t *testing.T) {
		t.Parallel()

		existing := &findable.Session{ID: "s1", Token: "tok"}
		svc := &analyze.Service{Sessions: &mock.SessionService{
			FindSessionByTokenFn: func(_ context.Context, token string) (*findable.Session, error) {
				assert.Equal(t, "tok", token)
				return existing, nil
			},
		}}

		sess, err := svc.GetOrCreate(context.Background(), "tok")

		require.NoError(t, err)
		assert.Same(t, existing, sess)
	})

	t.Run("creates session for unknown token", func(t *testing.T) {
		t.Parallel()

		svc := &analyze.Service{Sessions: &mock.SessionService{
			FindSessionByTokenFn: func(context.Context, string) (*findable.Session, error) {
				return nil, findable.Errorf(findable.ENOTFOUND, "session not found")
			},
			CreateSessionFn: func(_ context.Context, s *findable.Session) error {
				s.ID = "new"
				s.Token = "fresh"
				return nil
			},
		}}

		sess, err := svc.GetOrCreate(context.Background(), "stale")

		require.NoError(t, err)
		assert.Equal(t, "fresh", sess.Token)
	})

	t.Run("creates session without token", func(t *testing.T) {
		t.Parallel()

		created := false
		svc := &analyze.Service{Sessions: &mock.SessionService{
			CreateSessionFn: func(context.Context, *findable.Session) error {
				created = true
				return nil
			},
		}}

		_, err := svc.GetOrCreate(context.Background(), "")

		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("propagates lookup failures", func(t *testing.T) {
		t.Parallel()

		svc := &analyze.Service{Sessions: &mock.SessionService{
			FindSessionByTokenFn: func(context.Context, string) (*findable.Session, error) {
				return nil, findable.Errorf(findable.EINTERNAL, "disk on fire")
			},
		}}

		_, err := svc.GetOrCreate(context.Background(), "tok")

		assert.Equal(t, findable.EINTERNAL, findable.ErrorCode(err))
	})
}

func TestService_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("stores url and extracted features", func(t *testing.T) {
		t.Parallel()

		var updates int
		svc := newService(recordingSessions(&updates), func(findable.GenerateRequest) (string, error) {
			return `["Customer timeline", "Email sync", "Pipelines"]`, nil
		})
		sess := &findable.Session{Pages: []*findable.Page{{Slug: "kept"}}}

		err := svc.Analyze(context.Background(), sess, " https://acme.dev ")

		require.NoError(t, err)
		assert.Equal(t, "https://acme.dev", sess.WebsiteURL)
		assert.Equal(t, []string{"Customer timeline", "Email sync", "Pipelines"}, sess.Features)
		assert.Len(t, sess.Pages, 1)
		assert.Equal(t, 1, updates)
	})

	t.Run("leaves session untouched on failure", func(t *testing.T) {
		t.Parallel()

		var updates int
		svc := newService(recordingSessions(&updates), func(findable.GenerateRequest) (string, error) {
			return `[]`, nil
		})
		sess := &findable.Session{WebsiteURL: "https://old.dev", Features: []string{"old"}}

		err := svc.Analyze(context.Background(), sess, "https://acme.dev")

		require.Error(t, err)
		assert.Equal(t, "https://old.dev", sess.WebsiteURL)
		assert.Equal(t, []string{"old"}, sess.Features)
		assert.Zero(t, updates)
	})
}

func TestService_EditFeatures(t *testing.T) {
	t.Parallel()

	t.Run("saves cleaned features and counts truncations", func(t *testing.T) {
		t.Parallel()

		var updates int
		svc := newService(recordingSessions(&updates), unexpectedGenerate(t))
		sess := &findable.Session{}

		truncated, err := svc.EditFeatures(context.Background(), sess, []string{" SSO ", "", strings.Repeat("y", 600)})

		require.NoError(t, err)
		assert.Equal(t, 1, truncated)
		require.Len(t, sess.Features, 2)
		assert.Equal(t, "SSO", sess.Features[0])
		assert.Len(t, sess.Features[1], 500)
		assert.Equal(t, 1, updates)
	})

	t.Run("rejects blank list without saving", func(t *testing.T) {
		t.Parallel()

		var updates int
		svc := newService(recordingSessions(&updates), unexpectedGenerate(t))

		_, err := svc.EditFeatures(context.Background(), &findable.Session{}, []string{"", "  "})

		require.Error(t, err)
		assert.Equal(t, findable.EINVALID, findable.ErrorCode(err))
		assert.Zero(t, updates)
	})
}

func TestService_GeneratePages(t *testing.T) {
	t.Parallel()

	t.Run("requires an analyzed website", func(t *testing.T) {
		t.Parallel()

		svc := newService(recordingSessions(new(int)), unexpectedGenerate(t))

		_, err := svc.GeneratePages(context.Background(), &findable.Session{Features: []string{"a"}}, 10)

		require.Error(t, err)
		assert.Contains(t, findable.ErrorMessage(err), "Please analyze a website first")
	})

	t.Run("requires features", func(t *testing.T) {
		t.Parallel()

		svc := newService(recordingSessions(new(int)), unexpectedGenerate(t))

		_, err := svc.GeneratePages(context.Background(), &findable.Session{WebsiteURL: "https://acme.dev"}, 10)

		require.Error(t, err)
		assert.Contains(t, findable.ErrorMessage(err), "Please add features first")
	})

	t.Run("replaces pages and reports the clamped request", func(t *testing.T) {
		t.Parallel()

		var updates int
		svc := newService(recordingSessions(&updates), func(findable.GenerateRequest) (string, error) {
			return pagesJSON("fresh", 10), nil
		})
		sess := &findable.Session{
			WebsiteURL: "https://acme.dev",
			Features:   []string{"a"},
			Pages:      []*findable.Page{{Slug: "stale"}},
		}

		requested, err := svc.GeneratePages(context.Background(), sess, 1)

		require.NoError(t, err)
		assert.Equal(t, 10, requested)
		assert.Len(t, sess.Pages, 10)
		assert.Nil(t, findable.FindPage(sess.Pages, "stale"))
		assert.Equal(t, 1, updates)
	})

	t.Run("keeps previous pages when generation fails", func(t *testing.T) {
		t.Parallel()

		var updates int
		svc := newService(recordingSessions(&updates), func(findable.GenerateRequest) (string, error) {
			return "", findable.Errorf(findable.ECREDENTIALS, "API key is not configured.")
		})
		sess := &findable.Session{
			WebsiteURL: "https://acme.dev",
			Features:   []string{"a"},
			Pages:      []*findable.Page{{Slug: "stale"}},
		}

		_, err := svc.GeneratePages(context.Background(), sess, 50)

		require.Error(t, err)
		assert.Len(t, sess.Pages, 1)
		assert.Zero(t, updates)
	})
}

func TestService_DeletePages(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing pages", func(t *testing.T) {
		t.Parallel()

		var updates int
		svc := newService(recordingSessions(&updates), unexpectedGenerate(t))
		sess := &findable.Session{Pages: []*findable.Page{{Slug: "a"}}}

		deleted, err := svc.DeletePages(context.Background(), sess)

		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Zero(t, sess.PageCount())
		assert.Equal(t, 1, updates)
	})

	t.Run("reports nothing to delete", func(t *testing.T) {
		t.Parallel()

		var updates int
		svc := newService(recordingSessions(&updates), unexpectedGenerate(t))

		deleted, err := svc.DeletePages(context.Background(), &findable.Session{})

		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Zero(t, updates)
	})
}

func TestService_RunReport(t *testing.T) {
	t.Parallel()

	t.Run("requires an analyzed website", func(t *testing.T) {
		t.Parallel()

		svc := newService(recordingSessions(new(int)), unexpectedGenerate(t))

		err := svc.RunReport(context.Background(), &findable.Session{})

		require.Error(t, err)
		assert.Contains(t, findable.ErrorMessage(err), "before running findability analysis")
	})

	t.Run("stores report built from stored pages", func(t *testing.T) {
		t.Parallel()

		var prompt string
		var updates int
		svc := newService(recordingSessions(&updates), func(req findable.GenerateRequest) (string, error) {
			prompt = req.Prompt
			return `{"overall_score": 64, "simulated_queries": ["crm with email sync"]}`, nil
		})
		sess := &findable.Session{
			WebsiteURL: "https://acme.dev",
			Features:   []string{"Email sync"},
			Pages:      []*findable.Page{{Slug: "email-sync", Title: "Email Sync", Content: "<p>Two-way sync.</p>"}},
		}

		err := svc.RunReport(context.Background(), sess)

		require.NoError(t, err)
		require.True(t, sess.HasReport())
		assert.Equal(t, 64, sess.Report.OverallScore)
		assert.Equal(t, []string{"crm with email sync"}, sess.Report.SimulatedQueries)
		assert.Contains(t, prompt, "- Email Sync: <p>Two-way sync.</p>...")
		assert.Equal(t, 1, updates)
	})
}

func TestService_EndToEnd(t *testing.T) {
	t.Parallel()

	var updates int
	svc := newService(recordingSessions(&updates), func(req findable.GenerateRequest) (string, error) {
		switch {
		case strings.Contains(req.System, "extracts features"):
			return `["Customer timeline", "Email sync", "Sales pipelines"]`, nil
		case strings.Contains(req.System, "generates AI-oriented"):
			return `[
				{"slug": "Customer Timeline", "title": "Customer Timeline", "content": "<h1>Timeline</h1>"},
				{"slug": "email_sync", "title": "Email Sync", "content": "<h1>Sync</h1>"},
				{"slug": "customer-timeline", "title": "Timeline again", "content": "<h1>Again</h1>"},
				{"slug": "pipelines", "title": "Pipelines", "content": "<h1>Pipelines</h1>"},
				{"slug": "faq", "title": "FAQ", "content": "<h1>FAQ</h1>"},
				{"slug": "use-cases", "title": "Use cases", "content": "<h1>Use cases</h1>"},
				{"slug": "pricing", "title": "Pricing", "content": "<h1>Pricing</h1>"},
				{"slug": "integrations", "title": "Integrations", "content": "<h1>Integrations</h1>"},
				{"slug": "security", "title": "Security", "content": "<h1>Security</h1>"},
				{"slug": "api", "title": "API", "content": "<h1>API</h1>"}
			]`, nil
		default:
			return `{"overall_score": 81}`, nil
		}
	})

	sess := &findable.Session{}
	ctx := context.Background()

	require.NoError(t, svc.Analyze(ctx, sess, "https://acme.dev"))
	require.Equal(t, 3, sess.FeatureCount())

	requested, err := svc.GeneratePages(ctx, sess, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, requested)
	require.Equal(t, 10, sess.PageCount())
	for _, p := range sess.Pages {
		assert.Regexp(t, `^[a-z0-9-]+$`, p.Slug)
	}
	assert.Equal(t, "customer-timeline-1", sess.Pages[2].Slug)
	assert.Equal(t, "emailsync", sess.Pages[1].Slug)

	require.NoError(t, svc.RunReport(ctx, sess))
	assert.Equal(t, 81, sess.Report.OverallScore)
	assert.NoError(t, sess.Validate())
	assert.Equal(t, 3, updates)
}
