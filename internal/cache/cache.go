// Package cache provides recommendation-result caching keyed by normalized
// profile hash. Identical inputs short-circuit to the cached result without
// re-running any tier. Cache failures are never fatal: a broken backend
// degrades to recomputation, not to a failed request.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

// keyVersion is bumped whenever the scoring semantics change, so stale
// entries from an older rule set can never be served.
const keyVersion = "v1"

// ResultCache stores assembled recommendation results by profile key.
// A miss is (nil, false, nil); an error means the backend misbehaved and
// the caller should recompute.
type ResultCache interface {
	// Get returns the cached result for key, if present and fresh.
	Get(ctx context.Context, key string) (*domain.RecommendationResult, bool, error)

	// Set stores a result under key for the backend's configured TTL.
	Set(ctx context.Context, key string, result *domain.RecommendationResult) error
}

// Stats is a point-in-time snapshot of cache effectiveness counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Errors int64 `json:"errors"`
}

// ProfileKey derives the deterministic cache key for a profile: a sha256
// digest over the normalized canonical encoding. Two profiles that
// normalize identically always share a key.
func ProfileKey(profile domain.UserProfile) string {
	normalized := profile.Normalize()
	canonical, err := json.Marshal(struct {
		Sliders  domain.Sliders     `json:"sliders"`
		Features []domain.FeatureID `json:"features"`
		FreeText string             `json:"freeText"`
	}{normalized.Sliders, normalized.SelectedFeatures, normalized.FreeText})
	if err != nil {
		// Marshal of plain structs cannot fail; keep the fallback total anyway.
		canonical = []byte(fmt.Sprintf("%+v", normalized))
	}

	sum := sha256.Sum256(canonical)
	return fmt.Sprintf("pumpdrive:result:%s:%s", keyVersion, hex.EncodeToString(sum[:]))
}
