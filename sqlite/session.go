package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/findable"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ findable.SessionService = (*SessionService)(nil)

// SessionService implements findable.SessionService using SQLite.
// Features, pages and the report are stored as JSON text.
type SessionService struct {
	db *DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *DB) *SessionService {
	return &SessionService{db: db}
}

const sessionColumns = "id, token, website_url, features, pages, report, created_at, updated_at"

// CreateSession creates a new session.
func (s *SessionService) CreateSession(ctx context.Context, session *findable.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	session.ID = uuid.New().String()
	session.Token = uuid.New().String()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	features, pages, report, err := encodeSession(session)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, token, website_url, features, pages, report, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, session.ID, session.Token, session.WebsiteURL, features, pages, report,
		session.CreatedAt.Format(time.RFC3339), session.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindSessionByToken retrieves a session by its token.
func (s *SessionService) FindSessionByToken(ctx context.Context, token string) (*findable.Session, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM sessions WHERE token = ?", token)

	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, findable.Errorf(findable.ENOTFOUND, "session not found")
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// FindSessions retrieves sessions matching the filter, newest first.
func (s *SessionService) FindSessions(ctx context.Context, filter findable.SessionFilter) ([]*findable.Session, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + sessionColumns + " FROM sessions WHERE 1=1")

	if filter.WebsiteURL != nil {
		query.WriteString(" AND instr(website_url, ?) > 0")
		args = append(args, *filter.WebsiteURL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []*findable.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// UpdateSession saves the session's website URL, features, pages and report.
func (s *SessionService) UpdateSession(ctx context.Context, session *findable.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	features, pages, report, err := encodeSession(session)
	if err != nil {
		return err
	}

	updatedAt := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET website_url = ?, features = ?, pages = ?, report = ?, updated_at = ?
		WHERE id = ?
	`, session.WebsiteURL, features, pages, report, updatedAt.Format(time.RFC3339), session.ID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return findable.Errorf(findable.ENOTFOUND, "session not found")
	}

	session.UpdatedAt = updatedAt
	return nil
}

// DeleteSession permanently removes a session.
func (s *SessionService) DeleteSession(ctx context.Context, token string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return findable.Errorf(findable.ENOTFOUND, "session not found")
	}
	return nil
}

// encodeSession marshals the JSON columns. report is nil when the session
// has no report so the column stays NULL.
func encodeSession(session *findable.Session) (features, pages string, report *string, err error) {
	f := session.Features
	if f == nil {
		f = []string{}
	}
	b, err := json.Marshal(f)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to encode features: %w", err)
	}
	features = string(b)

	p := session.Pages
	if p == nil {
		p = []*findable.Page{}
	}
	if b, err = json.Marshal(p); err != nil {
		return "", "", nil, fmt.Errorf("failed to encode pages: %w", err)
	}
	pages = string(b)

	if session.Report != nil {
		if b, err = json.Marshal(session.Report); err != nil {
			return "", "", nil, fmt.Errorf("failed to encode report: %w", err)
		}
		r := string(b)
		report = &r
	}
	return features, pages, report, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*findable.Session, error) {
	var session findable.Session
	var features, pages, createdAt, updatedAt string
	var report sql.NullString

	if err := row.Scan(&session.ID, &session.Token, &session.WebsiteURL, &features, &pages, &report,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(features), &session.Features); err != nil {
		return nil, fmt.Errorf("failed to decode features: %w", err)
	}
	if err := json.Unmarshal([]byte(pages), &session.Pages); err != nil {
		return nil, fmt.Errorf("failed to decode pages: %w", err)
	}
	if report.Valid {
		session.Report = &findable.Report{}
		if err := json.Unmarshal([]byte(report.String), session.Report); err != nil {
			return nil, fmt.Errorf("failed to decode report: %w", err)
		}
	}

	var err error
	if session.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if session.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &session, nil
}
