package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/orchestrator"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/scoring"
)

func newTestStore(t *testing.T, ttl time.Duration) *SQLiteSessionStore {
	t.Helper()
	store, err := NewSQLiteSessionStore(filepath.Join(t.TempDir(), "sessions.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSession(requestID string, createdAt time.Time) *orchestrator.Session {
	state := scoring.Initialize()
	state.Apply(domain.StageSemantic, domain.CandidateTwiist, 20, "scripted")

	return &orchestrator.Session{
		RequestID: requestID,
		Profile:   domain.UserProfile{FreeText: "watch bolusing"},
		State:     state,
		Question: &domain.FollowUpQuestion{
			Question:  "Do you wear an Apple Watch daily?",
			Dimension: domain.DimBolusWorkflow,
			Options: []domain.AnswerOption{
				{ID: "yes", Label: "Yes", Deltas: map[domain.CandidateID]float64{domain.CandidateTwiist: 5}},
				{ID: "no", Label: "No", Deltas: map[domain.CandidateID]float64{domain.CandidateTSlimX2: 2}},
			},
		},
		Tier:      domain.TierAIPrimary,
		CreatedAt: createdAt,
	}
}

func TestSQLiteSessionStore_RoundTrip(t *testing.T) {
	store := newTestStore(t, time.Hour)
	ctx := context.Background()

	want := sampleSession("req-1", time.Now().UTC())
	require.NoError(t, store.Put(ctx, want))

	got, err := store.Get(ctx, "req-1")
	require.NoError(t, err)

	assert.Equal(t, want.RequestID, got.RequestID)
	assert.Equal(t, want.Tier, got.Tier)
	assert.Equal(t, want.Question.Question, got.Question.Question)
	assert.InDelta(t, want.State.Score(domain.CandidateTwiist), got.State.Score(domain.CandidateTwiist), 0.001)

	// The ledger survives the trip intact enough to apply an answer.
	require.NoError(t, scoring.ApplyAnswer(got.State, got.Question, "yes"))
	assert.InDelta(t, 55, got.State.Score(domain.CandidateTwiist), 0.001)
}

func TestSQLiteSessionStore_UnknownRequest(t *testing.T) {
	store := newTestStore(t, time.Hour)
	_, err := store.Get(context.Background(), "never-stored")
	assert.ErrorIs(t, err, domain.ErrUnknownRequest)
}

func TestSQLiteSessionStore_ExpiredReportsUnknown(t *testing.T) {
	store := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleSession("req-1", time.Now().Add(-2*time.Hour))))

	_, err := store.Get(ctx, "req-1")
	assert.ErrorIs(t, err, domain.ErrUnknownRequest)
}

func TestSQLiteSessionStore_DeleteConsumesSession(t *testing.T) {
	store := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleSession("req-1", time.Now())))
	require.NoError(t, store.Delete(ctx, "req-1"))

	_, err := store.Get(ctx, "req-1")
	assert.ErrorIs(t, err, domain.ErrUnknownRequest)

	// Deleting again is harmless.
	assert.NoError(t, store.Delete(ctx, "req-1"))
}

func TestSQLiteSessionStore_Prune(t *testing.T) {
	store := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleSession("fresh", time.Now())))
	require.NoError(t, store.Put(ctx, sampleSession("stale-1", time.Now().Add(-2*time.Hour))))
	require.NoError(t, store.Put(ctx, sampleSession("stale-2", time.Now().Add(-3*time.Hour))))

	pruned, err := store.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pruned)

	_, err = store.Get(ctx, "fresh")
	assert.NoError(t, err)
}
