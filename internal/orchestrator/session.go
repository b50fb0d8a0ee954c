package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

// Session is the pending state behind an issued follow-up question: the
// pre-answer score ledger snapshot, the question itself, and the tier that
// produced it. Answering replays the snapshot plus the chosen option's
// deltas, so an answer never compounds on top of another answer.
type Session struct {
	RequestID string                   `json:"requestId"`
	Profile   domain.UserProfile       `json:"profile"`
	State     *domain.ScoreState       `json:"state"`
	Question  *domain.FollowUpQuestion `json:"question"`
	Tier      domain.Tier              `json:"tier"`
	CreatedAt time.Time                `json:"createdAt"`
}

// SessionStore persists pending follow-up sessions across the ask/answer
// round trip. A lookup for an unknown or expired request id returns
// domain.ErrUnknownRequest.
type SessionStore interface {
	Put(ctx context.Context, session *Session) error
	Get(ctx context.Context, requestID string) (*Session, error)
	Delete(ctx context.Context, requestID string) error
}

// MemorySessionStore is an in-process SessionStore with TTL expiry. It
// serves single-instance deployments; clustered deployments use the sqlite
// store so a follow-up answer can land on any instance.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionStore creates an in-process session store whose entries
// expire after ttl.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Put stores a session keyed by its request id.
func (m *MemorySessionStore) Put(_ context.Context, session *Session) error {
	m.mu.Lock()
	m.sessions[session.RequestID] = session
	m.mu.Unlock()
	return nil
}

// Get returns the pending session for requestID. Expired sessions are
// dropped lazily and report as unknown.
func (m *MemorySessionStore) Get(_ context.Context, requestID string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[requestID]
	m.mu.RUnlock()

	if !ok {
		return nil, domain.ErrUnknownRequest
	}
	if m.now().Sub(session.CreatedAt) > m.ttl {
		m.mu.Lock()
		delete(m.sessions, requestID)
		m.mu.Unlock()
		return nil, domain.ErrUnknownRequest
	}
	return session, nil
}

// Delete removes a session once its answer has been applied.
func (m *MemorySessionStore) Delete(_ context.Context, requestID string) error {
	m.mu.Lock()
	delete(m.sessions, requestID)
	m.mu.Unlock()
	return nil
}
