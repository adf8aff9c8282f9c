package mock

import (
	"context"

	"github.com/fwojciec/findable"
)

// Compile-time interface verification.
var (
	_ findable.PageStore      = (*PageStore)(nil)
	_ findable.SitemapBuilder = (*SitemapBuilder)(nil)
)

// PageStore is a mock implementation of findable.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *findable.Page) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *findable.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}

// SitemapBuilder is a mock implementation of findable.SitemapBuilder.
type SitemapBuilder struct {
	BuildSitemapFn func(locs []string) ([]byte, error)
}

func (b *SitemapBuilder) BuildSitemap(locs []string) ([]byte, error) {
	return b.BuildSitemapFn(locs)
}
