// Package storage persists pending follow-up sessions in sqlite, so an
// answer can land on a different instance, or after a restart, and still
// find its question.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/orchestrator"
)

const schema = `
CREATE TABLE IF NOT EXISTS followup_sessions (
	request_id TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_followup_sessions_created_at
	ON followup_sessions (created_at);
`

// SQLiteSessionStore is a durable orchestrator.SessionStore. Session TTL is
// enforced on read and reclaimed by Prune.
type SQLiteSessionStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewSQLiteSessionStore opens (creating if needed) the session database at
// path and applies the schema.
func NewSQLiteSessionStore(path string, ttl time.Duration) (*SQLiteSessionStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	// sqlite serializes writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply session schema: %w", err)
	}

	return &SQLiteSessionStore{db: db, ttl: ttl, now: time.Now}, nil
}

// Put stores or replaces the session for its request id.
func (s *SQLiteSessionStore) Put(ctx context.Context, session *orchestrator.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO followup_sessions (request_id, payload, created_at) VALUES (?, ?, ?)`,
		session.RequestID, payload, session.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Get returns the pending session for requestID, treating expired rows as
// unknown.
func (s *SQLiteSessionStore) Get(ctx context.Context, requestID string) (*orchestrator.Session, error) {
	var payload []byte
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, created_at FROM followup_sessions WHERE request_id = ?`,
		requestID).Scan(&payload, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUnknownRequest
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if s.now().Sub(time.Unix(createdAt, 0)) > s.ttl {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM followup_sessions WHERE request_id = ?`, requestID)
		return nil, domain.ErrUnknownRequest
	}

	var session orchestrator.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Delete removes a consumed session. Deleting an absent session is a no-op.
func (s *SQLiteSessionStore) Delete(ctx context.Context, requestID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM followup_sessions WHERE request_id = ?`, requestID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Prune removes every expired session and returns how many were reclaimed.
// Intended for a periodic background sweep.
func (s *SQLiteSessionStore) Prune(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.ttl).Unix()
	res, err := s.db.ExecContext(ctx, `DELETE FROM followup_sessions WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the database handle.
func (s *SQLiteSessionStore) Close() error { return s.db.Close() }
