package mock

import (
	"context"

	"github.com/fwojciec/findable"
)

var _ findable.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of findable.SessionService.
type SessionService struct {
	CreateSessionFn      func(ctx context.Context, session *findable.Session) error
	FindSessionByTokenFn func(ctx context.Context, token string) (*findable.Session, error)
	FindSessionsFn       func(ctx context.Context, filter findable.SessionFilter) ([]*findable.Session, error)
	UpdateSessionFn      func(ctx context.Context, session *findable.Session) error
	DeleteSessionFn      func(ctx context.Context, token string) error
}

func (s *SessionService) CreateSession(ctx context.Context, session *findable.Session) error {
	return s.CreateSessionFn(ctx, session)
}

func (s *SessionService) FindSessionByToken(ctx context.Context, token string) (*findable.Session, error) {
	return s.FindSessionByTokenFn(ctx, token)
}

func (s *SessionService) FindSessions(ctx context.Context, filter findable.SessionFilter) ([]*findable.Session, error) {
	return s.FindSessionsFn(ctx, filter)
}

func (s *SessionService) UpdateSession(ctx context.Context, session *findable.Session) error {
	return s.UpdateSessionFn(ctx, session)
}

func (s *SessionService) DeleteSession(ctx context.Context, token string) error {
	return s.DeleteSessionFn(ctx, token)
}
