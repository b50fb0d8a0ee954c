// Package orchestrator drives a recommendation request through the tier
// chain: cache check, AI-primary, AI-secondary, deterministic fallback.
// Tier failures are absorbed; the only error a caller ever sees from a
// well-formed deployment is a validation rejection of its own input.
package orchestrator

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/cache"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/fallback"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/llm"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/scoring"
	"github.com/RakeshEPC/tshla-medical-sub000/pkg/events"
)

// Default per-tier wall-clock budgets. The secondary budget is shorter so
// a doubly degraded request still answers inside a minute.
const (
	DefaultPrimaryTimeout   = 30 * time.Second
	DefaultSecondaryTimeout = 25 * time.Second
)

// Engine composes the tier chain behind the two public operations,
// Recommend and AnswerFollowUp. It is safe for concurrent use.
type Engine struct {
	primary   llm.Collaborator
	secondary llm.Collaborator
	results   cache.ResultCache
	sessions  SessionStore
	sink      events.EventSink
	logger    *slog.Logger

	primaryTimeout   time.Duration
	secondaryTimeout time.Duration

	stats engineStats
}

type engineStats struct {
	primary       atomic.Int64
	secondary     atomic.Int64
	deterministic atomic.Int64
	cacheHits     atomic.Int64
	followUps     atomic.Int64
}

// Stats is a point-in-time snapshot of the engine's tier counters.
type Stats struct {
	Primary       int64 `json:"primary"`
	Secondary     int64 `json:"secondary"`
	Deterministic int64 `json:"deterministic"`
	CacheHits     int64 `json:"cacheHits"`
	FollowUps     int64 `json:"followUpsIssued"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithEventSink routes lifecycle events to a projection pipeline.
func WithEventSink(sink events.EventSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithTierTimeouts overrides the per-tier wall-clock budgets.
func WithTierTimeouts(primary, secondary time.Duration) Option {
	return func(e *Engine) {
		e.primaryTimeout = primary
		e.secondaryTimeout = secondary
	}
}

// New assembles an engine. Either collaborator may be nil, which skips its
// tier; results and sessions may not be nil.
func New(primary, secondary llm.Collaborator, results cache.ResultCache, sessions SessionStore, opts ...Option) *Engine {
	e := &Engine{
		primary:          primary,
		secondary:        secondary,
		results:          results,
		sessions:         sessions,
		sink:             events.NewNoOpEventSink(),
		logger:           slog.Default().With("component", "engine"),
		primaryTimeout:   DefaultPrimaryTimeout,
		secondaryTimeout: DefaultSecondaryTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend produces a recommendation for a profile. Malformed profiles are
// rejected with a ValidationError; every other failure mode degrades
// through the tier chain and still yields a result.
func (e *Engine) Recommend(ctx context.Context, profile *domain.UserProfile) (*domain.RecommendationResult, error) {
	if profile == nil {
		return nil, domain.NewValidationError("profile", "profile is required", domain.ErrNilProfile)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	normalized := profile.Normalize()

	key := cache.ProfileKey(normalized)
	if cached, ok, err := e.results.Get(ctx, key); err == nil && ok {
		e.stats.cacheHits.Add(1)
		cacheHitsTotal.Inc()
		e.emit(ctx, events.TypeCacheHit, cached.RequestID, nil)
		e.logger.Info("serving cached recommendation",
			"requestId", cached.RequestID, "tier", cached.Tier)
		return cached, nil
	}

	requestID := uuid.NewString()
	logger := e.logger.With("requestId", requestID)

	attempts := []struct {
		tier    domain.Tier
		collab  llm.Collaborator
		timeout time.Duration
	}{
		{domain.TierAIPrimary, e.primary, e.primaryTimeout},
		{domain.TierAISecondary, e.secondary, e.secondaryTimeout},
	}

	for _, attempt := range attempts {
		if attempt.collab == nil {
			continue
		}

		start := time.Now()
		result, state, err := e.runAITier(ctx, attempt.tier, attempt.collab, attempt.timeout, normalized, requestID)
		tierLatencySeconds.WithLabelValues(string(attempt.tier)).Observe(time.Since(start).Seconds())

		if err != nil {
			tierFailuresTotal.WithLabelValues(string(attempt.tier)).Inc()
			logger.Warn("tier failed, advancing", "tier", attempt.tier, "error", err)
			continue
		}

		e.countTier(attempt.tier)
		return e.finish(ctx, key, result, state, normalized, logger)
	}

	// The deterministic tier cannot fail.
	result := fallback.Recommend(normalized, requestID)
	e.stats.deterministic.Add(1)
	recommendationsTotal.WithLabelValues(string(domain.TierDeterministic)).Inc()
	if err := e.results.Set(ctx, key, result); err != nil {
		logger.Warn("cache write failed", "error", err)
	}
	e.emit(ctx, events.TypeRecommendationAssembled, result.RequestID, assembledPayload(result))
	logger.Info("recommendation assembled", "tier", result.Tier,
		"topChoice", result.TopChoice.CandidateID, "score", result.TopChoice.Score)
	return result, nil
}

// AnswerFollowUp applies a chosen option to a pending follow-up session and
// re-assembles the result from the pre-answer ledger snapshot.
func (e *Engine) AnswerFollowUp(ctx context.Context, requestID, optionID string) (*domain.RecommendationResult, error) {
	session, err := e.sessions.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	state := session.State.Clone()
	if err := scoring.ApplyAnswer(state, session.Question, optionID); err != nil {
		return nil, err
	}

	result := scoring.Aggregate(state, requestID, session.Tier, scoring.Confidence(state), nil)
	if err := e.sessions.Delete(ctx, requestID); err != nil {
		e.logger.Warn("session delete failed", "requestId", requestID, "error", err)
	}
	followUpsAnsweredTotal.Inc()
	e.emit(ctx, events.TypeFollowUpAnswered, requestID, assembledPayload(result))
	e.logger.Info("follow-up answer applied", "requestId", requestID,
		"option", optionID, "topChoice", result.TopChoice.CandidateID)
	return result, nil
}

// EngineStats returns the tier counter snapshot.
func (e *Engine) EngineStats() Stats {
	return Stats{
		Primary:       e.stats.primary.Load(),
		Secondary:     e.stats.secondary.Load(),
		Deterministic: e.stats.deterministic.Load(),
		CacheHits:     e.stats.cacheHits.Load(),
		FollowUps:     e.stats.followUps.Load(),
	}
}

// runAITier executes the staged pipeline against one collaborator under its
// wall-clock budget. Any collaborator error aborts the tier; partial AI
// contributions are discarded with it.
func (e *Engine) runAITier(ctx context.Context, tier domain.Tier, collab llm.Collaborator,
	timeout time.Duration, profile domain.UserProfile, requestID string,
) (*domain.RecommendationResult, *domain.ScoreState, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	state := scoring.Initialize()
	scoring.ApplySliders(state, profile.Sliders)
	scoring.ApplyFeatures(state, profile.SelectedFeatures, e.logger)

	semantic, err := collab.AnalyzeText(ctx, llm.BuildRequest(profile, nil))
	if err != nil {
		return nil, nil, err
	}
	scoring.ApplySemantic(state, semantic)

	var followUp *domain.FollowUpQuestion
	if tied, conflict := scoring.DetectConflict(state); conflict {
		question, err := collab.GenerateFollowUp(ctx, llm.BuildRequest(profile, &llm.StageContext{
			AppliedStages:     []domain.Stage{domain.StageSliders, domain.StageFeatures, domain.StageSemantic},
			CurrentScores:     state.Scores,
			ExtractedIntents:  semantic.ExtractedIntents,
			DimensionsMissing: semantic.DimensionsMissing,
			TiedCandidates:    tied,
		}))
		if err != nil {
			// A lost question degrades the result, not the request.
			e.logger.Warn("follow-up generation failed", "tier", tier, "error", err)
		} else {
			followUp = question
		}
	}

	final, err := collab.FinalAnalysis(ctx, llm.BuildRequest(profile, &llm.StageContext{
		AppliedStages:     []domain.Stage{domain.StageSliders, domain.StageFeatures, domain.StageSemantic},
		CurrentScores:     state.Scores,
		ExtractedIntents:  semantic.ExtractedIntents,
		DimensionsMissing: semantic.DimensionsMissing,
	}))
	if err != nil {
		return nil, nil, err
	}
	scoring.ApplyFinal(state, final)

	result := scoring.Aggregate(state, requestID, tier, scoring.Confidence(state), followUp)
	return result, state, nil
}

// finish persists the side effects of a successful AI tier: a pending
// session when a follow-up is attached, a cache entry when the result is
// final. Results carrying an open question are never cached; the cached
// form of a profile must be answerable without session state.
func (e *Engine) finish(ctx context.Context, key string, result *domain.RecommendationResult,
	state *domain.ScoreState, profile domain.UserProfile, logger *slog.Logger,
) (*domain.RecommendationResult, error) {
	recommendationsTotal.WithLabelValues(string(result.Tier)).Inc()

	if result.FollowUp != nil {
		e.stats.followUps.Add(1)
		followUpsIssuedTotal.Inc()
		e.emit(ctx, events.TypeFollowUpIssued, result.RequestID, result.FollowUp)
		session := &Session{
			RequestID: result.RequestID,
			Profile:   profile,
			State:     state.Clone(),
			Question:  result.FollowUp,
			Tier:      result.Tier,
			CreatedAt: time.Now().UTC(),
		}
		if err := e.sessions.Put(ctx, session); err != nil {
			// Without a session the question is unanswerable; drop it.
			logger.Warn("session store failed, dropping follow-up", "error", err)
			result.FollowUp = nil
		}
	}

	if result.FollowUp == nil {
		if err := e.results.Set(ctx, key, result); err != nil {
			logger.Warn("cache write failed", "error", err)
		}
	}

	e.emit(ctx, events.TypeRecommendationAssembled, result.RequestID, assembledPayload(result))
	logger.Info("recommendation assembled", "tier", result.Tier,
		"topChoice", result.TopChoice.CandidateID, "score", result.TopChoice.Score,
		"followUp", result.FollowUp != nil)
	return result, nil
}

// emit publishes a lifecycle event, best effort.
func (e *Engine) emit(ctx context.Context, eventType, requestID string, payload any) {
	event := events.NewEnvelope(eventType, "recommendation-engine", requestID, payload)
	if err := e.sink.Append(ctx, event); err != nil {
		e.logger.Warn("event emission failed", "type", eventType, "error", err)
	}
}

// assembledPayload is the event payload for an assembled result.
func assembledPayload(result *domain.RecommendationResult) any {
	return struct {
		Tier       domain.Tier        `json:"tier"`
		TopChoice  domain.CandidateID `json:"topChoice"`
		Score      float64            `json:"score"`
		Confidence float64            `json:"confidence"`
		FollowUp   bool               `json:"followUp"`
	}{result.Tier, result.TopChoice.CandidateID, result.TopChoice.Score, result.Confidence, result.FollowUp != nil}
}

func (e *Engine) countTier(tier domain.Tier) {
	switch tier {
	case domain.TierAIPrimary:
		e.stats.primary.Add(1)
	case domain.TierAISecondary:
		e.stats.secondary.Add(1)
	case domain.TierDeterministic:
		e.stats.deterministic.Add(1)
	}
}
